package health

import "errors"

var (
	// ErrCheckTimeout is the Result error of a checker that outlived the
	// aggregator timeout.
	ErrCheckTimeout = errors.New("health: check timed out")

	// ErrCheckerNotFound is returned by Aggregator.Check for an unknown name.
	ErrCheckerNotFound = errors.New("health: no checker registered under that name")
)
