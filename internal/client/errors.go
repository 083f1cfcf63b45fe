package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the planning server could not be reached.
	ErrUnavailable = errors.New("planning server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("planning request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("planning request retry attempts exhausted")
)

// StatusError is a non-2xx response from the server. Client errors (4xx)
// are not retried.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Message)
}

func (e *StatusError) retryable() bool {
	return e.Code >= 500
}
