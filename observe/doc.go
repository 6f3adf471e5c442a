// Package observe provides tracing, metrics and structured logging for
// catalog operations and cache lookups.
//
// An Op names one operation as an entity and an action ("courses",
// "list"). Middleware.Run wraps an operation with a span, metrics and a
// log line. Metrics also implements cache.LookupRecorder, so the same
// meter records cache hits and misses.
//
// Exporters (otlp, prometheus, stdout) are configured through Config and
// built by the exporters subpackage.
package observe
