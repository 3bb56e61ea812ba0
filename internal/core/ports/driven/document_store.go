package driven

import "github.com/custodia-labs/reader-bridge/internal/core/domain"

// DocumentStore caches fetched documents by title for the life of the
// process. Two documents sharing a title overwrite each other; the store
// is a cache, not a system of record.
type DocumentStore interface {
	// Upsert inserts or replaces the entry for doc.Title.
	Upsert(doc domain.Document)

	// Get returns the document stored under title, or ErrNotFound.
	Get(title string) (domain.Document, error)

	// List returns all stored documents in insertion order.
	List() []domain.Document

	// Len reports the number of stored documents.
	Len() int
}
