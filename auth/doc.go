// Package auth guards the catalog's admin writes.
//
// Authenticators turn request headers into an Identity (JWT bearer tokens
// or static API keys). An Authorizer decides whether that identity may
// perform an action on an entity. RequireIdentity and RequirePermission
// wrap both as HTTP middleware.
package auth
