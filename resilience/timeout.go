package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutConfig configures Timeout.
type TimeoutConfig struct {
	// Timeout bounds one call.
	// Default: 30 seconds
	Timeout time.Duration
}

// Timeout runs context-aware operations under a deadline.
//
// The operation runs on the caller's goroutine and must honor ctx, as
// database/sql calls do.
type Timeout struct {
	limit time.Duration
}

// NewTimeout creates a Timeout.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &Timeout{limit: config.Timeout}
}

// Limit returns the deadline applied to each call.
func (t *Timeout) Limit() time.Duration { return t.limit }

// Execute runs op with a derived deadline. If op fails after that deadline
// passed, its error is wrapped in ErrTimeout. A deadline already set by the
// caller that expires first is not reported as ErrTimeout.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeoutCause(ctx, t.limit, ErrTimeout)
	defer cancel()

	err := op(ctx)
	if err != nil && errors.Is(context.Cause(ctx), ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// ExecuteWithTimeout runs op under a one-off deadline.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	return NewTimeout(TimeoutConfig{Timeout: timeout}).Execute(ctx, op)
}
