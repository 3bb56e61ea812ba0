package mocks

import (
	"context"

	"github.com/custodia-labs/reader-bridge/internal/core/ports/driven"
)

// MockFeedParser is a canned FeedParser for testing.
type MockFeedParser struct {
	Title   string
	Entries []driven.FeedEntry
	Err     error

	ParseCalls []string
}

func (m *MockFeedParser) Parse(ctx context.Context, feedURL string) (string, []driven.FeedEntry, error) {
	m.ParseCalls = append(m.ParseCalls, feedURL)
	if m.Err != nil {
		return "", nil, m.Err
	}
	return m.Title, m.Entries, nil
}
