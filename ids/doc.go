// Package ids generates primary keys for catalog records.
//
// Three shapes are supported:
//
//   - sequential: fixed-width zero-padded integers ("01", "02", ...)
//   - yearly: two-digit year followed by a sequence ("25001")
//   - timestamped: "{prefix}-{unixMillis}" with an optional random suffix
//
// Sequential and yearly ids are derived from the current maximum id in the
// table. Two concurrent writers may read the same maximum; callers insert
// under the table's primary key constraint and retry with a fresh id on a
// duplicate-key error.
package ids
