// Package cache provides the response cache used by the catalog read paths.
//
// It provides a Store interface with an in-memory implementation, TTL
// policies per data category, wildcard invalidation, a background sweeper
// that evicts expired entries, and a read-through helper that stores the
// serialized response envelope verbatim.
//
// Every process owns its own Store. Writes handled by one process do not
// invalidate the caches of other processes; staleness across instances is
// bounded by the entry TTL only.
package cache
