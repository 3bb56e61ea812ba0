package driving

import (
	"context"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
)

// LibraryService is the driving port for all document operations exposed
// by the tool surface and the CLI.
type LibraryService interface {
	// FetchDocuments retrieves every document matching the filters,
	// following page cursors until the result set is complete, and
	// upserts each document into the store. location is required;
	// category and updatedAfter may be empty. Invalid values fail with
	// ErrInvalidInput before any request is sent.
	FetchDocuments(ctx context.Context, location, category, updatedAfter string) ([]domain.Document, error)

	// SaveURL saves a URL to Reader. existed reports whether the
	// document was already present.
	SaveURL(ctx context.Context, url string) (existed bool, result *domain.SaveResult, err error)

	// ImportFeed parses a syndication feed and saves each entry URL to
	// Reader. Individual entry failures are counted, not fatal.
	ImportFeed(ctx context.Context, feedURL string) (*domain.FeedImport, error)

	// Document returns the cached document stored under title.
	Document(title string) (domain.Document, error)

	// Documents returns all cached documents in insertion order.
	Documents() []domain.Document
}
