package domain

import (
	"encoding/json"
	"fmt"
)

// Location is the triage location of a document within Reader.
type Location string

const (
	LocationNew       Location = "new"
	LocationLater     Location = "later"
	LocationShortlist Location = "shortlist"
	LocationArchive   Location = "archive"
	LocationFeed      Location = "feed"
)

// Locations is the closed set of valid locations.
var Locations = []Location{
	LocationNew,
	LocationLater,
	LocationShortlist,
	LocationArchive,
	LocationFeed,
}

// ParseLocation validates a raw location value.
func ParseLocation(s string) (Location, error) {
	for _, loc := range Locations {
		if Location(s) == loc {
			return loc, nil
		}
	}
	return "", fmt.Errorf("%w: invalid location %q", ErrInvalidInput, s)
}

// Category is the content category of a document.
type Category string

const (
	CategoryArticle   Category = "article"
	CategoryEmail     Category = "email"
	CategoryRSS       Category = "rss"
	CategoryHighlight Category = "highlight"
	CategoryNote      Category = "note"
	CategoryPDF       Category = "pdf"
	CategoryEPUB      Category = "epub"
	CategoryTweet     Category = "tweet"
	CategoryVideo     Category = "video"
)

// Categories is the closed set of valid categories.
var Categories = []Category{
	CategoryArticle,
	CategoryEmail,
	CategoryRSS,
	CategoryHighlight,
	CategoryNote,
	CategoryPDF,
	CategoryEPUB,
	CategoryTweet,
	CategoryVideo,
}

// ParseCategory validates a raw category value.
func ParseCategory(s string) (Category, error) {
	for _, cat := range Categories {
		if Category(s) == cat {
			return cat, nil
		}
	}
	return "", fmt.Errorf("%w: invalid category %q", ErrInvalidInput, s)
}

// Tag organises documents inside Reader. Tags arrive from the remote
// service and are never modified locally.
type Tag struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
}

// PublishedDate tolerates the remote API returning either an ISO 8601
// string or a numeric timestamp for the same field.
type PublishedDate string

func (p *PublishedDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PublishedDate(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = PublishedDate(n.String())
	return nil
}

// Document is a single document saved in Reader. Documents are value
// objects received from the remote service; entries in the store are
// only ever replaced wholesale, never mutated in place.
type Document struct {
	ID            string         `json:"id"`
	URL           string         `json:"url"`
	Title         string         `json:"title"`
	SourceURL     string         `json:"source_url,omitempty"`
	Author        string         `json:"author,omitempty"`
	Source        string         `json:"source,omitempty"`
	Category      string         `json:"category,omitempty"`
	Location      string         `json:"location,omitempty"`
	Tags          map[string]Tag `json:"tags,omitempty"`
	SiteName      string         `json:"site_name,omitempty"`
	WordCount     int            `json:"word_count,omitempty"`
	CreatedAt     string         `json:"created_at,omitempty"`
	UpdatedAt     string         `json:"updated_at,omitempty"`
	PublishedDate PublishedDate  `json:"published_date,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	HTMLContent   string         `json:"html_content,omitempty"`
}
