package driven

import (
	"context"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
)

// ReaderClient performs the two remote operations against the Reader API.
// Implementations own rate-limit recovery: a 429 response is retried after
// the server-supplied delay and never surfaces to callers unless the
// context is cancelled while waiting.
type ReaderClient interface {
	// List fetches a single page of documents for the query.
	List(ctx context.Context, query domain.ListQuery) (*domain.ListPage, error)

	// Save stores a URL in Reader. existed reports whether the document
	// was already present (HTTP 200) rather than newly created (HTTP 201).
	Save(ctx context.Context, req domain.SaveRequest) (existed bool, result *domain.SaveResult, err error)
}
