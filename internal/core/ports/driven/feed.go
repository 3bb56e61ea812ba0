package driven

import "context"

// FeedEntry is a single item parsed from a syndication feed.
type FeedEntry struct {
	Title string
	URL   string
}

// FeedParser fetches and parses an RSS/Atom feed.
type FeedParser interface {
	// Parse returns the feed title and its entries.
	Parse(ctx context.Context, feedURL string) (title string, entries []FeedEntry, err error)
}
