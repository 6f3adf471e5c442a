// Package health reports whether the catalog service can serve traffic.
//
// A Checker reports one component (the relational store, the response
// cache). An Aggregator runs every registered checker in parallel under a
// shared deadline and folds the results into one Status.
//
// # HTTP Endpoints
//
//	health.Register(router, agg)
//
// mounts:
//
//   - /healthz: liveness, always 200 while the process runs
//   - /readyz: 200 unless a checker is unhealthy
//   - /health: JSON report of every checker
package health
