package health

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/coursecms/cache"
)

// Pinger is satisfied by *store.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabaseChecker pings the relational store.
type DatabaseChecker struct {
	db       Pinger
	slowPing time.Duration
}

// NewDatabaseChecker reports degraded when a ping takes longer than
// slowPing (default 500ms).
func NewDatabaseChecker(db Pinger, slowPing time.Duration) *DatabaseChecker {
	if slowPing <= 0 {
		slowPing = 500 * time.Millisecond
	}
	return &DatabaseChecker{db: db, slowPing: slowPing}
}

// Name returns "database".
func (c *DatabaseChecker) Name() string { return "database" }

// Check pings the store.
func (c *DatabaseChecker) Check(ctx context.Context) Result {
	start := time.Now()
	if err := c.db.Ping(ctx); err != nil {
		return Unhealthy("database unreachable", err)
	}

	latency := time.Since(start)
	details := map[string]any{"ping_ms": latency.Milliseconds()}
	if latency > c.slowPing {
		return Degraded(fmt.Sprintf("database ping took %s", latency)).WithDetails(details)
	}
	return Healthy("database reachable").WithDetails(details)
}

// CacheChecker reports the size of the response cache.
type CacheChecker struct {
	store      cache.Store
	maxEntries int
}

// NewCacheChecker reports degraded when the cache holds more than
// maxEntries live entries. Zero disables the limit.
func NewCacheChecker(store cache.Store, maxEntries int) *CacheChecker {
	return &CacheChecker{store: store, maxEntries: maxEntries}
}

// Name returns "cache".
func (c *CacheChecker) Name() string { return "cache" }

// Check reads the cache statistics.
func (c *CacheChecker) Check(ctx context.Context) Result {
	if c.store == nil {
		return Unhealthy("cache not configured", cache.ErrNilCache)
	}

	stats := c.store.Stats(ctx)
	details := map[string]any{"size": stats.Size}
	if c.maxEntries > 0 && stats.Size > c.maxEntries {
		return Degraded(fmt.Sprintf("cache holds %d entries, limit %d", stats.Size, c.maxEntries)).WithDetails(details)
	}
	return Healthy("cache available").WithDetails(details)
}
