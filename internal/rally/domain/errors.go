package domain

import (
	"fmt"
	"net/http"
)

// UpstreamError is a failed call to a third-party API. StatusCode is the
// upstream HTTP status, or 0 when no response was received.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Service, msg)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Service, e.StatusCode, msg)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// HTTPStatus is the status to pass on to our own callers: a missing upstream
// resource stays a 404, anything else is our failure.
func (e *UpstreamError) HTTPStatus() int {
	if e.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
