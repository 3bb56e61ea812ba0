// Package feeds implements the FeedParser port for RSS and Atom feeds.
package feeds

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/custodia-labs/reader-bridge/internal/core/ports/driven"
)

// Ensure Parser implements FeedParser
var _ driven.FeedParser = (*Parser)(nil)

// Parser fetches and parses syndication feeds.
type Parser struct {
	parser *gofeed.Parser
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{parser: gofeed.NewParser()}
}

// Parse fetches feedURL and returns the feed title and its entries.
func (p *Parser) Parse(ctx context.Context, feedURL string) (string, []driven.FeedEntry, error) {
	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return "", nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}

	entries := make([]driven.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, driven.FeedEntry{
			Title: item.Title,
			URL:   item.Link,
		})
	}
	return feed.Title, entries, nil
}
