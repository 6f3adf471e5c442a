package store

import "time"

// Config configures a MySQL connection pool.
type Config struct {
	// DSN is a go-sql-driver/mysql data source name,
	// e.g. "user:pass@tcp(localhost:3306)/catalog".
	DSN string

	// MaxOpenConns limits open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns limits idle connections.
	// Default: 5
	MaxIdleConns int

	// ConnMaxLifetime recycles connections older than this.
	// Default: 5 minutes
	ConnMaxLifetime time.Duration

	// QueryTimeout bounds each statement. Zero disables the bound.
	QueryTimeout time.Duration

	// ConnectAttempts is how many pings Open tries before giving up.
	// Default: 5
	ConnectAttempts int

	// ConnectTimeout bounds each ping made by Open.
	// Default: 5 seconds
	ConnectTimeout time.Duration

	// ConnectBackoff is the delay before the second ping; it doubles
	// after each failure.
	// Default: 500 milliseconds
	ConnectBackoff time.Duration
}

func (c *Config) applyDefaults() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
	if c.ConnectAttempts <= 0 {
		c.ConnectAttempts = 5
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	if c.ConnectBackoff <= 0 {
		c.ConnectBackoff = 500 * time.Millisecond
	}
}
