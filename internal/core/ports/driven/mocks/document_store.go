package mocks

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
)

// MockDocumentStore is an in-memory DocumentStore for testing that records
// every upsert in arrival order.
type MockDocumentStore struct {
	mu      sync.RWMutex
	docs    map[string]domain.Document
	order   []string
	Upserts []domain.Document
}

// NewMockDocumentStore creates an empty MockDocumentStore.
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{docs: make(map[string]domain.Document)}
}

func (m *MockDocumentStore) Upsert(doc domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[doc.Title]; !ok {
		m.order = append(m.order, doc.Title)
	}
	m.docs[doc.Title] = doc
	m.Upserts = append(m.Upserts, doc)
}

func (m *MockDocumentStore) Get(title string) (domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[title]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: no document titled %q", domain.ErrNotFound, title)
	}
	return doc, nil
}

func (m *MockDocumentStore) List() []domain.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Document, 0, len(m.order))
	for _, title := range m.order {
		out = append(out, m.docs[title])
	}
	return out
}

func (m *MockDocumentStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
