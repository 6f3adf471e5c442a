package resilience

import (
	"context"
	"time"
)

// Executor applies a per-attempt timeout inside an optional retry loop.
type Executor struct {
	retry   *Retry
	timeout *Timeout
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates an Executor. With no options it just calls op.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRetry retries failed attempts with r.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) { e.retry = r }
}

// WithTimeout bounds every attempt by d.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = NewTimeout(TimeoutConfig{Timeout: d}) }
}

// Execute runs op. Each attempt gets a fresh deadline, so a slow attempt
// does not shorten the next one.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	attempt := op
	if e.timeout != nil {
		attempt = func(ctx context.Context) error { return e.timeout.Execute(ctx, op) }
	}
	if e.retry == nil {
		return attempt(ctx)
	}
	return e.retry.Execute(ctx, attempt)
}
