package gotdict

import (
	"errors"
	"fmt"
)

// Lookup failures. Translation failures never appear here; the Resolver
// absorbs them.
var (
	// ErrInvalidInput is returned for an empty or blank word.
	ErrInvalidInput = errors.New("invalid word parameter")
	// ErrWordNotFound maps an upstream 404.
	ErrWordNotFound = errors.New("word not found in dictionary")
	// ErrRateLimited maps an upstream 429.
	ErrRateLimited = errors.New("too many requests")
	// ErrNoDefinition is returned when the upstream payload is not a non-empty array.
	ErrNoDefinition = errors.New("no definition found")
	// ErrBackendUnavailable is returned by a translation backend that cannot serve the request.
	ErrBackendUnavailable = errors.New("translation backend unavailable")
)

// NetworkError indicates a transport-level failure (DNS, connection, timeout).
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %v", e.Cause)
	}
	return "network error"
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// UpstreamError indicates any other non-2xx status or an undecodable payload.
type UpstreamError struct {
	Status int
	Cause  error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream error (status %d): %v", e.Status, e.Cause)
	}
	return fmt.Sprintf("upstream error (status %d)", e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// BackendError indicates a translation backend failure (API error, quota, bad payload).
type BackendError struct {
	Backend   string
	Message   string
	Cause     error
	Retryable bool // Whether the call can be retried
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s backend: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s backend: %s", e.Backend, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// ErrorMessage renders err as the user-visible text sent back across the
// message boundary.
func ErrorMessage(err error) string {
	var netErr *NetworkError
	var upErr *UpstreamError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "Invalid word parameter"
	case errors.Is(err, ErrWordNotFound):
		return "Word not found in dictionary"
	case errors.Is(err, ErrRateLimited):
		return "Too many requests. Please try again later."
	case errors.Is(err, ErrNoDefinition):
		return "No definition found"
	case errors.As(err, &netErr):
		return "Network error. Please check your internet connection."
	case errors.As(err, &upErr):
		return fmt.Sprintf("API Error: %d", upErr.Status)
	default:
		return "Failed to fetch definition"
	}
}
