package auth

import (
	"context"
	"fmt"
)

// Actions checked by the catalog API.
const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// Authorizer decides whether an identity may act on a resource.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: a denial is reported as an error matching ErrForbidden.
type Authorizer interface {
	Name() string
	Authorize(ctx context.Context, req *AuthzRequest) error
}

// AuthzRequest names the subject, resource and action being checked.
type AuthzRequest struct {
	Subject *Identity

	// Resource is the entity namespace, e.g. "courses" or "cache".
	Resource string

	Action string
}

// AuthzError describes a denial.
type AuthzError struct {
	Subject  string
	Resource string
	Action   string
	Reason   string
}

// Error returns the error message.
func (e *AuthzError) Error() string {
	return fmt.Sprintf("authorization denied: subject=%q resource=%q action=%q reason=%q",
		e.Subject, e.Resource, e.Action, e.Reason)
}

// Is matches ErrForbidden.
func (e *AuthzError) Is(target error) bool {
	return target == ErrForbidden
}

// AuthorizerFunc adapts a function to an Authorizer.
type AuthorizerFunc func(ctx context.Context, req *AuthzRequest) error

// Authorize calls f.
func (f AuthorizerFunc) Authorize(ctx context.Context, req *AuthzRequest) error {
	return f(ctx, req)
}

// Name returns "func".
func (f AuthorizerFunc) Name() string { return "func" }
