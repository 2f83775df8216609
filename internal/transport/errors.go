package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyEndpoint indicates Post was called without an endpoint.
	ErrEmptyEndpoint = errors.New("transport: empty endpoint")
)

// StatusError is returned for non-2xx HTTP responses. Body holds the raw
// response so callers can inspect server-provided error payloads.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
