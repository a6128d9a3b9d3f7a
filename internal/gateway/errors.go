package gateway

import (
	"fmt"
	"strings"
)

// TransportError indicates the GraphQL backend could not be reached
// at all (connection refused, DNS failure, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GraphQL backend is unavailable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendError indicates the backend was reachable but responded with
// a non-success status or a GraphQL error payload.
type BackendError struct {
	StatusCode int
	Messages   []string
}

func (e *BackendError) Error() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("GraphQL backend returned status %d", e.StatusCode)
}
