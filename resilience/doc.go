// Package resilience wraps relational store calls with retries and
// deadlines.
//
// Store faults are not retried blindly. A Retry only repeats errors its
// RetryIf accepts, such as a primary-key conflict on an insert that
// regenerates its id on every attempt, or a refused connection while the
// database is still starting.
//
//	exec := resilience.NewExecutor(
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
//	        MaxAttempts:  5,
//	        InitialDelay: 500 * time.Millisecond,
//	    })),
//	    resilience.WithTimeout(5*time.Second),
//	)
//	err := exec.Execute(ctx, db.Ping)
package resilience
