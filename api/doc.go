// Package api exposes the catalog over HTTP.
//
// Public list endpoints return the cached envelope bytes unchanged. Writes,
// admin-user reads and cache administration require a JWT bearer token or
// an API key, and are checked against the role table in auth.CatalogRBAC.
//
//	GET    /api/{entity}            list (instructors, courses: ?institutionId=)
//	GET    /api/{entity}/{id}       single record
//	POST   /api/{entity}            create
//	PUT    /api/{entity}/{id}       update
//	DELETE /api/{entity}/{id}       delete
//	GET    /api/admin/cache/stats   cache size and keys
//	POST   /api/admin/cache/clear   drop every cache entry
//
// PUT replaces every writable column of the record. A course body without
// categoryIds keeps the course's categories; "categoryIds": [] clears them.
// ?institutionId=all is the unfiltered list.
//
// /healthz, /readyz and /health come from package health; /metrics serves
// the Prometheus registry when one is configured.
package api
