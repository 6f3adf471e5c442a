// Package store provides the relational data access helpers used by the
// catalog repositories.
//
// DB wraps a sqlx connection pool and exposes three primitives:
//
//   - Query returns every row as a column→value map (never nil)
//   - QueryOne returns the first row, or reports that none exists
//   - Execute returns the number of affected rows
//
// plus typed helpers (Select, Get, NamedExecute) for struct scanning.
//
// Store faults are never retried or masked here. They are returned wrapped
// with %w so callers can inspect the driver error with errors.Is and
// errors.As. IsDuplicateKey classifies primary-key conflicts.
//
// # Usage
//
//	db, err := store.Open(ctx, store.Config{DSN: dsn})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	rows, err := db.Query(ctx, "SELECT * FROM categories ORDER BY id ASC")
package store
