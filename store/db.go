package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/jonwraymond/coursecms/resilience"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Result reports the outcome of a mutating statement.
type Result struct {
	AffectedRows int64
}

// DB is the data access handle shared by all repositories.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: store faults are returned wrapped, never retried.
type DB struct {
	db      *sqlx.DB
	timeout *resilience.Timeout
}

// Option configures a DB.
type Option func(*DB)

// WithQueryTimeout bounds every statement with d. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(db *DB) {
		if d > 0 {
			db.timeout = resilience.NewTimeout(resilience.TimeoutConfig{Timeout: d})
		} else {
			db.timeout = nil
		}
	}
}

// New wraps an existing sqlx handle.
func New(db *sqlx.DB, opts ...Option) *DB {
	d := &DB{db: db}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open connects to MySQL and verifies the connection with a ping,
// retrying while the server is still starting.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	cfg.applyDefaults()

	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDSN, err)
	}
	mc.ParseTime = true
	// Report matched rather than changed rows so an UPDATE that rewrites
	// identical values is not mistaken for a missing row.
	mc.ClientFoundRows = true

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDSN, err)
	}

	sqlDB := sql.OpenDB(connector)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := New(sqlx.NewDb(sqlDB, "mysql"), WithQueryTimeout(cfg.QueryTimeout))
	if err := connect(ctx, db, cfg); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// connect pings db until it answers or cfg.ConnectAttempts is spent.
func connect(ctx context.Context, db *DB, cfg Config) error {
	exec := resilience.NewExecutor(
		resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
			MaxAttempts:  cfg.ConnectAttempts,
			InitialDelay: cfg.ConnectBackoff,
			MaxDelay:     8 * cfg.ConnectBackoff,
			Multiplier:   2,
		})),
		resilience.WithTimeout(cfg.ConnectTimeout),
	)
	if err := exec.Execute(ctx, db.Ping); err != nil {
		return fmt.Errorf("store: connect: %w", err)
	}
	return nil
}

// Query runs a SELECT and returns all rows. No rows yields an empty slice.
func (d *DB) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	if d == nil || d.db == nil {
		return nil, ErrNilDB
	}

	var rows []Row
	err := d.run(ctx, func(ctx context.Context) error {
		rows = []Row{}
		rs, err := d.db.QueryxContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rs.Close()

		for rs.Next() {
			row := Row{}
			if err := rs.MapScan(row); err != nil {
				return err
			}
			rows = append(rows, normalize(row))
		}
		return rs.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	return rows, nil
}

// QueryOne returns the first row of a SELECT. The boolean is false when the
// query matched nothing.
func (d *DB) QueryOne(ctx context.Context, query string, args ...any) (Row, bool, error) {
	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0], true, nil
}

// Execute runs a mutating statement and reports the affected row count.
func (d *DB) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	if d == nil || d.db == nil {
		return Result{}, ErrNilDB
	}
	return execute(ctx, d, func(ctx context.Context) (sql.Result, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
}

// NamedExecute runs a mutating statement with :name parameters bound from
// arg (a struct with db tags or a map).
func (d *DB) NamedExecute(ctx context.Context, query string, arg any) (Result, error) {
	if d == nil || d.db == nil {
		return Result{}, ErrNilDB
	}
	return execute(ctx, d, func(ctx context.Context) (sql.Result, error) {
		return d.db.NamedExecContext(ctx, query, arg)
	})
}

// Select scans all rows into dest, a pointer to a slice.
func (d *DB) Select(ctx context.Context, dest any, query string, args ...any) error {
	if d == nil || d.db == nil {
		return ErrNilDB
	}
	err := d.run(ctx, func(ctx context.Context) error {
		return d.db.SelectContext(ctx, dest, query, args...)
	})
	if err != nil {
		return fmt.Errorf("store: select: %w", err)
	}
	return nil
}

// Get scans the first row into dest. The boolean is false when no row
// matched.
func (d *DB) Get(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	if d == nil || d.db == nil {
		return false, ErrNilDB
	}
	err := d.run(ctx, func(ctx context.Context) error {
		return d.db.GetContext(ctx, dest, query, args...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: get: %w", err)
	}
	return true, nil
}

// identifier matches plain lower-case SQL identifiers.
var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// MaxID returns the greatest id in table, restricted to ids starting with
// prefix when prefix is non-empty. The boolean is false for an empty table.
func (d *DB) MaxID(ctx context.Context, table, prefix string) (string, bool, error) {
	if !identifier.MatchString(table) {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidIdentifier, table)
	}

	query := "SELECT id FROM " + table
	var args []any
	if prefix != "" {
		query += " WHERE id LIKE ?"
		args = append(args, prefix+"%")
	}
	query += " ORDER BY id DESC LIMIT 1"

	var id string
	found, err := d.Get(ctx, &id, query, args...)
	if err != nil || !found {
		return "", false, err
	}
	return id, true, nil
}

// Ping verifies the connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.db == nil {
		return ErrNilDB
	}
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) run(ctx context.Context, op func(context.Context) error) error {
	if d.timeout == nil {
		return op(ctx)
	}
	return d.timeout.Execute(ctx, op)
}

func execute(ctx context.Context, d *DB, exec func(context.Context) (sql.Result, error)) (Result, error) {
	var res sql.Result
	err := d.run(ctx, func(ctx context.Context) error {
		var err error
		res, err = exec(ctx)
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("store: execute: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Result{}, fmt.Errorf("store: rows affected: %w", err)
	}
	return Result{AffectedRows: n}, nil
}

// normalize converts driver byte slices to strings so rows serialize as
// text rather than base64.
func normalize(row Row) Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return row
}
