package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilCache       = errors.New("cache: cache is nil")
	ErrInvalidKey     = errors.New("cache: key is invalid")
	ErrKeyTooLong     = errors.New("cache: key exceeds max length")
	ErrInvalidPattern = errors.New("cache: pattern is invalid")
)

// Store is the interface for the response cache.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Expiry: Get never returns an entry whose TTL has elapsed.
// - Errors: Get never errors; it returns (nil, false) on miss.
type Store interface {
	// Get retrieves a cached value. Returns (nil, false) on miss or expiry.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value, replacing any previous entry for key.
	// A non-positive TTL selects the store's default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a cached value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// ClearPattern removes every key matching a glob where "*" matches
	// zero or more characters. Returns the number of removed entries.
	ClearPattern(ctx context.Context, pattern string) (int, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Cleanup removes all expired entries and returns how many were removed.
	Cleanup(ctx context.Context) int

	// Stats reports the entry count and keys, for diagnostics.
	Stats(ctx context.Context) Stats
}

// Entry is a single cached value.
type Entry struct {
	Key       string
	Value     []byte
	ExpiresAt time.Time
}

// Expired reports whether the entry is stale at now.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Stats is a diagnostic snapshot of a Store.
type Stats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
