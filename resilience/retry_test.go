package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var (
	errDuplicate = errors.New("Error 1062: Duplicate entry '0612' for key 'PRIMARY'")
	errRefused   = errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")
)

func isDuplicate(err error) bool { return errors.Is(err, errDuplicate) }

func TestNewRetry_Defaults(t *testing.T) {
	r := NewRetry(RetryConfig{})

	if r.Attempts() != 3 {
		t.Errorf("Attempts() = %d, want 3", r.Attempts())
	}
	if r.config.InitialDelay != 100*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 100ms", r.config.InitialDelay)
	}
	if r.config.MaxDelay != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", r.config.MaxDelay)
	}
	if r.config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %v, want 2", r.config.Multiplier)
	}
	if !r.config.RetryIf(errRefused) {
		t.Error("default RetryIf should accept any error")
	}
}

func TestRetry_InsertSucceedsAfterCollision(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, RetryIf: isDuplicate})

	var ids []string
	candidates := []string{"0612", "0612", "0613"}
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		id := candidates[len(ids)]
		ids = append(ids, id)
		if id == "0612" {
			return errDuplicate
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("attempts = %d, want 3", len(ids))
	}
}

func TestRetry_Exhausted(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, RetryIf: isDuplicate})

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errDuplicate
	})

	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if !errors.Is(err, ErrMaxRetriesExceeded) {
		t.Errorf("Execute() error = %v, want ErrMaxRetriesExceeded", err)
	}
	if !errors.Is(err, errDuplicate) {
		t.Errorf("Execute() error = %v, want last error wrapped", err)
	}
}

func TestRetry_UnclassifiedErrorReturnedAsIs(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond, RetryIf: isDuplicate})

	attempts := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errRefused
	})

	if err != errRefused {
		t.Errorf("Execute() error = %v, want %v", err, errRefused)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_CancelledDuringDelay(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := r.Execute(ctx, func(ctx context.Context) error {
		attempts++
		cancel()
		return errRefused
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_DelayCapped(t *testing.T) {
	r := NewRetry(RetryConfig{InitialDelay: time.Second, MaxDelay: 3 * time.Second})

	if got := r.jittered(10 * time.Second); got != 3*time.Second {
		t.Errorf("jittered(10s) = %v, want 3s", got)
	}
}

func TestRetry_JitterBounds(t *testing.T) {
	r := NewRetry(RetryConfig{MaxDelay: time.Minute, Jitter: true})

	for i := 0; i < 50; i++ {
		got := r.jittered(100 * time.Millisecond)
		if got < 100*time.Millisecond || got >= 125*time.Millisecond {
			t.Fatalf("jittered(100ms) = %v, want [100ms, 125ms)", got)
		}
	}
	if got := r.jittered(2); got != 2 {
		t.Errorf("jittered(2ns) = %v, want 2ns", got)
	}
}

func TestRetry_BackoffGrows(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: 10 * time.Millisecond, Multiplier: 3})

	var stamps []time.Time
	_ = r.Execute(context.Background(), func(ctx context.Context) error {
		stamps = append(stamps, time.Now())
		return errRefused
	})

	if len(stamps) != 3 {
		t.Fatalf("attempts = %d, want 3", len(stamps))
	}
	first, second := stamps[1].Sub(stamps[0]), stamps[2].Sub(stamps[1])
	if first < 10*time.Millisecond {
		t.Errorf("first delay = %v, want >= 10ms", first)
	}
	if second < 30*time.Millisecond {
		t.Errorf("second delay = %v, want >= 30ms", second)
	}
}
