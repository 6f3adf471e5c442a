// Package catalog implements the course catalog entities and their cached
// read/write services.
//
// Each entity is described by a Table: its SQL table, cache namespace,
// writable columns, optional filter column, TTL and id strategy. A generic
// Repository turns a Table into parameterized statements, and a Resource
// puts the response cache in front of it:
//
//   - List reads go through cache.ReadThrough under "<entity>:all" or
//     "<entity>:<filter>" and return the cached envelope bytes verbatim.
//   - Writes go straight to the store and then invalidate. Entities without
//     a filter column drop "<entity>:all"; filtered entities clear
//     "<entity>:*".
//
// Sequential ids are read-max-then-increment. Inserts rely on the primary
// key constraint and retry with a freshly generated id when the store
// reports a duplicate key.
package catalog
