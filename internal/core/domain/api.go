package domain

import "fmt"

// ListQuery holds the parameters for one page request against the list
// endpoint. Queries are built per call and never persisted.
type ListQuery struct {
	Location        Location
	Category        Category // optional, empty means all categories
	UpdatedAfter    string   // optional, RFC 3339
	WithHTMLContent bool
	PageCursor      string // optional, forwarded from the previous page
}

// Validate checks enum membership before the query is sent anywhere.
func (q ListQuery) Validate() error {
	if _, err := ParseLocation(string(q.Location)); err != nil {
		return err
	}
	if q.Category != "" {
		if _, err := ParseCategory(string(q.Category)); err != nil {
			return err
		}
	}
	return nil
}

// ListPage is a single page of results from the list endpoint.
type ListPage struct {
	Count          int        `json:"count"`
	NextPageCursor string     `json:"nextPageCursor"`
	Results        []Document `json:"results"`
}

// SaveRequest is the body for saving a document to Reader.
type SaveRequest struct {
	URL             string   `json:"url"`
	HTML            string   `json:"html,omitempty"`
	ShouldCleanHTML bool     `json:"should_clean_html,omitempty"`
	Title           string   `json:"title,omitempty"`
	Author          string   `json:"author,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	PublishedDate   string   `json:"published_date,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	Location        Location `json:"location,omitempty"`
	SavedUsing      string   `json:"saved_using,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// Validate checks required fields and enum membership.
func (r SaveRequest) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	if r.Location != "" {
		if _, err := ParseLocation(string(r.Location)); err != nil {
			return err
		}
	}
	return nil
}

// SaveResult is the remote service's answer to a save request.
type SaveResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// FeedImport summarises the outcome of importing a syndication feed.
type FeedImport struct {
	FeedTitle string
	Saved     int
	Existed   int
	Failed    int
}
