package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tx is a transaction handle passed to WithTx callbacks.
type Tx struct {
	tx *sqlx.Tx
}

// Execute runs a mutating statement inside the transaction.
func (t *Tx) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	return txResult(res, err)
}

// NamedExecute runs a mutating statement with :name parameters inside the
// transaction.
func (t *Tx) NamedExecute(ctx context.Context, query string, arg any) (Result, error) {
	res, err := t.tx.NamedExecContext(ctx, query, arg)
	return txResult(res, err)
}

// WithTx runs fn in a transaction. It commits when fn returns nil and rolls
// back otherwise.
func (d *DB) WithTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	if d == nil || d.db == nil {
		return ErrNilDB
	}

	return d.run(ctx, func(ctx context.Context) error {
		tx, err := d.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("store: begin: %w", err)
		}

		if err := fn(ctx, &Tx{tx: tx}); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				return errors.Join(err, fmt.Errorf("store: rollback: %w", rbErr))
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("store: commit: %w", err)
		}
		return nil
	})
}

func txResult(res sql.Result, err error) (Result, error) {
	if err != nil {
		return Result{}, fmt.Errorf("store: execute: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Result{}, fmt.Errorf("store: rows affected: %w", err)
	}
	return Result{AffectedRows: n}, nil
}
