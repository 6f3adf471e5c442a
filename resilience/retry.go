package resilience

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// RetryConfig configures Retry. Delays grow exponentially from
// InitialDelay by Multiplier and are capped at MaxDelay.
type RetryConfig struct {
	// MaxAttempts counts the first attempt.
	// Default: 3
	MaxAttempts int

	// InitialDelay precedes the second attempt.
	// Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps any single delay.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier scales the delay after each failed attempt.
	// Default: 2.0
	Multiplier float64

	// Jitter adds up to 25% to each delay so concurrent writers that
	// collided once do not collide again in lockstep.
	Jitter bool

	// RetryIf classifies errors. Unclassified errors end the loop at once.
	// Default: every non-nil error is retried.
	RetryIf func(err error) bool
}

// Retry re-runs an operation while it fails with a retryable error.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a Retry, filling zero fields with defaults.
func NewRetry(config RetryConfig) *Retry {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 100 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 30 * time.Second
	}
	if config.Multiplier < 1 {
		config.Multiplier = 2.0
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}
	return &Retry{config: config}
}

// Attempts returns the configured attempt budget.
func (r *Retry) Attempts() int { return r.config.MaxAttempts }

// Execute runs op until it succeeds, fails with an error RetryIf rejects,
// or the attempt budget is spent. Rejected errors are returned unchanged;
// exhaustion returns the last error wrapped in ErrMaxRetriesExceeded.
// Cancellation during a delay returns ctx.Err().
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	delay := r.config.InitialDelay

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !r.config.RetryIf(err) {
			return err
		}
		if attempt == r.config.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempt, err)
		}

		if err := sleep(ctx, r.jittered(delay)); err != nil {
			return err
		}
		delay = min(time.Duration(float64(delay)*r.config.Multiplier), r.config.MaxDelay)
	}
}

func (r *Retry) jittered(d time.Duration) time.Duration {
	d = min(d, r.config.MaxDelay)
	if !r.config.Jitter || d < 4 {
		return d
	}
	// #nosec G404 -- timing variance, not a secret.
	return d + time.Duration(rand.Int64N(int64(d/4)))
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
