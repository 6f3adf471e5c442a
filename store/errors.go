package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors for store operations.
var (
	// ErrNilDB is returned when a helper is called on a nil DB.
	ErrNilDB = errors.New("store: db is nil")

	// ErrInvalidDSN is returned when the data source name cannot be parsed.
	ErrInvalidDSN = errors.New("store: invalid dsn")

	// ErrInvalidIdentifier is returned when a table or column name is not a
	// plain SQL identifier.
	ErrInvalidIdentifier = errors.New("store: invalid identifier")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports whether err is a unique or primary key violation.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
