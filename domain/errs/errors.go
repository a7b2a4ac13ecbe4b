package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the usecase and transport layers.
var (
	// ErrNotFound indicates the requested video does not exist upstream.
	ErrNotFound = errors.New("video not found")
	// ErrQuotaExceeded indicates the upstream API rejected the call because
	// the daily quota is exhausted.
	ErrQuotaExceeded = errors.New("API quota exceeded")
	// ErrRateLimited indicates the caller exceeded the per-client request window.
	ErrRateLimited = errors.New("too many requests")
	// ErrInvalidInput indicates a request or job payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// UpstreamError wraps an unexpected failure from the YouTube API, keeping the
// upstream HTTP status code when one is available.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
