package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and boundary adapters.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrUnavailable       = errors.New("service unavailable")
)

// RemoteError is a failure reported by the campus event API. It carries the
// HTTP status (0 when the backend was unreachable) and the server-provided
// detail message when one was present. Unwrap yields one of the sentinel
// errors above so callers can branch with errors.Is.
type RemoteError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("event api: %s (status %d)", e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("event api: status %d", e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
