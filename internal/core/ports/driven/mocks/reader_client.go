package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
)

// MockReaderClient is a scriptable ReaderClient for testing.
// Pages are returned in order, one per List call.
type MockReaderClient struct {
	mu sync.Mutex

	// Pages returned by successive List calls
	Pages []*domain.ListPage

	// ListErr fails the List call whose index matches ListErrAt
	// (-1 disables, which is the zero value via NewMockReaderClient)
	ListErr   error
	ListErrAt int

	// Save behaviour
	SaveExisted bool
	SaveResult  *domain.SaveResult
	SaveErr     error

	// Recorded calls
	ListCalls []domain.ListQuery
	SaveCalls []domain.SaveRequest
}

// NewMockReaderClient creates a mock with error injection disabled.
func NewMockReaderClient() *MockReaderClient {
	return &MockReaderClient{ListErrAt: -1}
}

func (m *MockReaderClient) List(ctx context.Context, query domain.ListQuery) (*domain.ListPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.ListCalls)
	m.ListCalls = append(m.ListCalls, query)

	if m.ListErr != nil && call == m.ListErrAt {
		return nil, m.ListErr
	}
	if call >= len(m.Pages) {
		return &domain.ListPage{}, nil
	}
	return m.Pages[call], nil
}

func (m *MockReaderClient) Save(ctx context.Context, req domain.SaveRequest) (bool, *domain.SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, req)

	if m.SaveErr != nil {
		return false, nil, m.SaveErr
	}
	result := m.SaveResult
	if result == nil {
		result = &domain.SaveResult{ID: "mock-id", URL: req.URL}
	}
	return m.SaveExisted, result, nil
}

// ListCallCount reports how many List calls were made.
func (m *MockReaderClient) ListCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ListCalls)
}
