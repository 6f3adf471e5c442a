package cache

import "time"

// TTLs per data category. Staleness tolerance differs by how often each
// kind of record changes, so there is no single global TTL.
const (
	// TTLReference covers slow-moving reference data: categories,
	// course types, institutions, banners and popups.
	TTLReference = 5 * time.Minute

	// TTLVolatile covers data edited throughout the day: news and courses.
	TTLVolatile = 2 * time.Minute

	// TTLFiltered covers lists keyed by a filter value, such as
	// instructors of one institution.
	TTLFiltered = 3 * time.Minute

	// DefaultCleanupInterval is how often the sweeper evicts expired entries.
	DefaultCleanupInterval = 5 * time.Minute
)

// Policy bounds the TTLs a MemoryStore applies.
type Policy struct {
	// DefaultTTL replaces a non-positive TTL passed to Set. A zero
	// DefaultTTL turns such writes into no-ops.
	DefaultTTL time.Duration

	// MaxTTL clamps every TTL when positive.
	MaxTTL time.Duration
}

// DefaultPolicy falls back to TTLReference and never keeps an entry
// longer than an hour.
func DefaultPolicy() Policy {
	return Policy{DefaultTTL: TTLReference, MaxTTL: time.Hour}
}

// EffectiveTTL resolves ttl against the policy.
func (p Policy) EffectiveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}
	if p.MaxTTL > 0 {
		ttl = min(ttl, p.MaxTTL)
	}
	return ttl
}
