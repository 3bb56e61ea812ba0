package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested document is not in the store
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a request failed validation before any I/O
	ErrInvalidInput = errors.New("invalid input")
)

// RemoteError is a non-2xx, non-429 response from the Reader API.
// The body is carried verbatim so callers see exactly what the server said.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("reader API error %d: %s", e.Status, e.Body)
}
