package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/coursecms/ids"
	"github.com/jonwraymond/coursecms/resilience"
	"github.com/jonwraymond/coursecms/store"
)

// DB is the store surface the repositories use. *store.DB satisfies it.
type DB interface {
	Select(ctx context.Context, dest any, query string, args ...any) error
	Get(ctx context.Context, dest any, query string, args ...any) (bool, error)
	Execute(ctx context.Context, query string, args ...any) (store.Result, error)
	NamedExecute(ctx context.Context, query string, arg any) (store.Result, error)
	MaxID(ctx context.Context, table, prefix string) (string, bool, error)
	WithTx(ctx context.Context, fn func(ctx context.Context, tx *store.Tx) error) error
}

var _ DB = (*store.DB)(nil)

// Optional record behavior, implemented by individual entities.
type (
	// preparer normalizes a record after validation and before it is written.
	preparer interface {
		prepare() error
	}

	// columnSelector narrows the columns an update writes.
	columnSelector interface {
		updateColumns(cols []string) []string
	}

	// joinWriter rewrites join rows inside the record's write transaction.
	joinWriter interface {
		writeJoins(ctx context.Context, tx *store.Tx) error
	}

	// joinLoader fills join data after a single-record read.
	joinLoader interface {
		loadJoins(ctx context.Context, db DB) error
	}
)

// RepositoryOption configures a Repository.
type RepositoryOption func(*repoOptions)

type repoOptions struct {
	now   func() time.Time
	retry resilience.RetryConfig
}

// WithClock sets the time source for timestamps and ids.
func WithClock(now func() time.Time) RepositoryOption {
	return func(o *repoOptions) {
		o.now = now
	}
}

// WithInsertRetry replaces the duplicate-key retry policy. RetryIf is always
// store.IsDuplicateKey.
func WithInsertRetry(cfg resilience.RetryConfig) RepositoryOption {
	return func(o *repoOptions) {
		o.retry = cfg
	}
}

// DefaultInsertRetry retries an insert up to three times on duplicate keys.
func DefaultInsertRetry() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     50 * time.Millisecond,
		Jitter:       true,
	}
}

// Repository issues the SQL for one Table.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Errors: store faults are returned wrapped, never masked; absent rows
//     are reported as (nil, false, nil) or (false, nil).
type Repository[T any, P Record[T]] struct {
	db    DB
	table Table
	now   func() time.Time
	retry *resilience.Retry
}

// NewRepository creates a repository for table.
func NewRepository[T any, P Record[T]](db DB, table Table, opts ...RepositoryOption) *Repository[T, P] {
	o := repoOptions{now: time.Now, retry: DefaultInsertRetry()}
	for _, opt := range opts {
		opt(&o)
	}
	o.retry.RetryIf = store.IsDuplicateKey

	return &Repository[T, P]{
		db:    db,
		table: withClock(table, o.now),
		now:   o.now,
		retry: resilience.NewRetry(o.retry),
	}
}

// withClock points clock-driven id strategies at now.
func withClock(t Table, now func() time.Time) Table {
	switch s := t.IDs.(type) {
	case ids.Yearly:
		if s.Now == nil {
			s.Now = now
			t.IDs = s
		}
	case ids.Timestamped:
		if s.Now == nil {
			s.Now = now
			t.IDs = s
		}
	}
	return t
}

// Table returns the table descriptor.
func (r *Repository[T, P]) Table() Table {
	return r.table
}

// List returns every record, or only those whose filter column equals
// filter when the table is filterable and filter is non-empty. The result
// is never nil.
func (r *Repository[T, P]) List(ctx context.Context, filter string) ([]T, error) {
	items := []T{}
	filtered := filter != "" && r.table.Filterable()

	var err error
	if filtered {
		err = r.db.Select(ctx, &items, r.table.listQuery(true), filter)
	} else {
		err = r.db.Select(ctx, &items, r.table.listQuery(false))
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Get loads one record by id.
func (r *Repository[T, P]) Get(ctx context.Context, id string) (P, bool, error) {
	rec := P(new(T))
	found, err := r.db.Get(ctx, rec, r.table.getQuery(), id)
	if err != nil || !found {
		return nil, false, err
	}
	if l, ok := any(rec).(joinLoader); ok {
		if err := l.loadJoins(ctx, r.db); err != nil {
			return nil, false, err
		}
	}
	return rec, true, nil
}

// Create validates rec, assigns a new id and timestamps, and inserts it.
// A duplicate-key failure regenerates the id and tries again. On failure
// rec's id and timestamps are left zero.
func (r *Repository[T, P]) Create(ctx context.Context, rec P) error {
	if err := r.prepare(rec, ""); err != nil {
		return err
	}

	now := r.now().UTC()
	meta := rec.Meta()
	meta.CreatedAt, meta.UpdatedAt = now, now

	err := r.retry.Execute(ctx, func(ctx context.Context) error {
		id, err := r.table.IDs.Next(ctx, r.db, r.table.Name)
		if err != nil {
			return err
		}
		meta.ID = id
		_, err = r.write(ctx, r.table.insertQuery(), rec)
		return err
	})
	if err == nil {
		return nil
	}

	// Nothing was stored, so rec must not carry the last attempted id.
	meta.ID = ""
	meta.CreatedAt, meta.UpdatedAt = time.Time{}, time.Time{}
	if errors.Is(err, resilience.ErrMaxRetriesExceeded) || errors.Is(err, ids.ErrSequenceExhausted) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}

// Update replaces the writable columns of record id. It reports false when
// no such record exists.
func (r *Repository[T, P]) Update(ctx context.Context, id string, rec P) (bool, error) {
	if err := r.prepare(rec, id); err != nil {
		return false, err
	}

	meta := rec.Meta()
	meta.UpdatedAt = r.now().UTC()

	cols := r.table.Columns
	if s, ok := any(rec).(columnSelector); ok {
		cols = s.updateColumns(cols)
	}

	res, err := r.write(ctx, r.table.updateQuery(cols), rec)
	if err != nil {
		return false, err
	}
	return res.AffectedRows > 0, nil
}

// Delete removes record id and its child rows. It returns ErrInUse while
// any referrer points at the record and reports false when no such record
// exists.
func (r *Repository[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	for _, ref := range r.table.Referrers {
		var n int
		if _, err := r.db.Get(ctx, &n, ref.countQuery(), id); err != nil {
			return false, err
		}
		if n > 0 {
			return false, fmt.Errorf("%w: %s %s is referenced by %d %s rows", ErrInUse, r.table.Namespace, id, n, ref.Table)
		}
	}

	if len(r.table.Children) == 0 {
		res, err := r.db.Execute(ctx, r.table.deleteQuery(), id)
		if err != nil {
			return false, err
		}
		return res.AffectedRows > 0, nil
	}

	var deleted bool
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		for _, child := range r.table.Children {
			if _, err := tx.Execute(ctx, child.deleteQuery(), id); err != nil {
				return err
			}
		}
		res, err := tx.Execute(ctx, r.table.deleteQuery(), id)
		if err != nil {
			return err
		}
		deleted = res.AffectedRows > 0
		return nil
	})
	return deleted, err
}

// prepare stamps id (empty on create), validates rec and runs its
// preparer.
func (r *Repository[T, P]) prepare(rec P, id string) error {
	if (*T)(rec) == nil {
		return invalid("body", "record is required")
	}
	rec.Meta().ID = id
	if err := Validate(rec); err != nil {
		return err
	}
	if p, ok := any(rec).(preparer); ok {
		return p.prepare()
	}
	return nil
}

// write runs a named statement, inside a transaction together with the
// record's join rows when it has any.
func (r *Repository[T, P]) write(ctx context.Context, query string, rec P) (store.Result, error) {
	jw, ok := any(rec).(joinWriter)
	if !ok {
		return r.db.NamedExecute(ctx, query, rec)
	}

	var res store.Result
	err := r.db.WithTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		var err error
		if res, err = tx.NamedExecute(ctx, query, rec); err != nil {
			return err
		}
		if res.AffectedRows == 0 {
			return nil
		}
		return jw.writeJoins(ctx, tx)
	})
	return res, err
}
