package ids

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNilQuerier is returned when a strategy that reads the current maximum
// is given no querier.
var ErrNilQuerier = errors.New("ids: querier is nil")

// ErrSequenceExhausted is returned when the next sequential id would need
// more digits than the configured width. A wider id would sort below the
// current maximum and be generated again on every later insert.
var ErrSequenceExhausted = errors.New("ids: sequence exhausted")

// MaxQuerier reads the greatest id of a table.
//
// Contract:
// - Ordering: ids compare lexicographically.
// - Prefix: when non-empty, only ids starting with prefix are considered.
// - Absent: an empty table (or no id with prefix) returns ok == false.
type MaxQuerier interface {
	MaxID(ctx context.Context, table, prefix string) (id string, ok bool, err error)
}

// Strategy produces the next id for a table.
type Strategy interface {
	Next(ctx context.Context, q MaxQuerier, table string) (string, error)
}

// Sequential produces fixed-width numeric ids from the table maximum.
type Sequential struct {
	Width int
}

// Next implements Strategy.
func (s Sequential) Next(ctx context.Context, q MaxQuerier, table string) (string, error) {
	if q == nil {
		return "", ErrNilQuerier
	}
	maxID, _, err := q.MaxID(ctx, table, "")
	if err != nil {
		return "", fmt.Errorf("ids: read max id of %s: %w", table, err)
	}
	return fitWidth(table, NextSequence(maxID, s.Width), s.Width)
}

// Yearly produces "{yy}{seq}" ids from the maximum of the current year.
type Yearly struct {
	SeqWidth int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Next implements Strategy.
func (y Yearly) Next(ctx context.Context, q MaxQuerier, table string) (string, error) {
	if q == nil {
		return "", ErrNilQuerier
	}
	now := clock(y.Now)()
	maxID, _, err := q.MaxID(ctx, table, YearPrefix(now))
	if err != nil {
		return "", fmt.Errorf("ids: read max id of %s: %w", table, err)
	}
	return fitWidth(table, NextYearSequence(maxID, now, y.SeqWidth), 2+y.SeqWidth)
}

func fitWidth(table, id string, width int) (string, error) {
	if len(id) > width {
		return "", fmt.Errorf("%w: %s after %s", ErrSequenceExhausted, table, id)
	}
	return id, nil
}

// Timestamped produces "{Prefix}-{unixMillis}[-{rand}]" ids. It never reads
// the store.
type Timestamped struct {
	Prefix string
	Random bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Next implements Strategy.
func (t Timestamped) Next(ctx context.Context, _ MaxQuerier, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return NewTimestampID(t.Prefix, clock(t.Now)(), t.Random), nil
}

func clock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
