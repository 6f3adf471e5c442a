package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/coursecms/resilience"
)

var errConflict = errors.New("duplicate entry '06' for key 'PRIMARY'")

func ExampleNewRetry() {
	retry := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		RetryIf:      func(err error) bool { return errors.Is(err, errConflict) },
	})

	attempt := 0
	err := retry.Execute(context.Background(), func(ctx context.Context) error {
		attempt++
		if attempt == 1 {
			return errConflict
		}
		return nil
	})

	fmt.Println("Attempts:", attempt)
	fmt.Println("Error:", err)
	// Output:
	// Attempts: 2
	// Error: <nil>
}

func ExampleExecuteWithTimeout() {
	err := resilience.ExecuteWithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	fmt.Println("Timed out:", errors.Is(err, resilience.ErrTimeout))
	// Output:
	// Timed out: true
}
