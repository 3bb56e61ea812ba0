// Package memstore provides the in-process document cache backing resource
// listing and prompt generation. Entries live for the life of the process;
// there is no eviction and no persistence.
package memstore

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
	"github.com/custodia-labs/reader-bridge/internal/core/ports/driven"
)

// Ensure Store implements DocumentStore
var _ driven.DocumentStore = (*Store)(nil)

// Store is an insertion-ordered map from document title to the most
// recently fetched document. Overwrites keep the title's original slot
// in the iteration order.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]domain.Document
	order []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{docs: make(map[string]domain.Document)}
}

// Upsert inserts or replaces the entry for doc.Title.
func (s *Store) Upsert(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.Title]; !ok {
		s.order = append(s.order, doc.Title)
	}
	s.docs[doc.Title] = doc
}

// Get returns the document stored under title.
func (s *Store) Get(title string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[title]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: no document titled %q", domain.ErrNotFound, title)
	}
	return doc, nil
}

// List returns a snapshot of all stored documents in insertion order.
func (s *Store) List() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, 0, len(s.order))
	for _, title := range s.order {
		out = append(out, s.docs[title])
	}
	return out
}

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
