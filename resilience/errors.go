package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrMaxRetriesExceeded is returned, wrapping the last error, when a
	// retryable error persists through every attempt.
	ErrMaxRetriesExceeded = errors.New("resilience: max retries exceeded")

	// ErrTimeout is returned, wrapping the operation error, when an
	// operation runs past its deadline.
	ErrTimeout = errors.New("resilience: operation timed out")
)
