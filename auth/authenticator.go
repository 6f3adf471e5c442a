package auth

import (
	"context"
	"net/http"
)

// Authenticator validates credentials and returns an identity.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: methods should honor cancellation/deadlines.
//   - Errors: Authenticate returns (nil, error) for internal errors and
//     (result, nil) for credential failures; check result.Authenticated.
type Authenticator interface {
	Name() string

	// Supports reports whether the request carries credentials this
	// authenticator understands.
	Supports(req *Request) bool

	Authenticate(ctx context.Context, req *Request) (*Result, error)
}

// Request carries the credentials of one HTTP request.
type Request struct {
	Headers http.Header
}

// NewRequest wraps the headers of r.
func NewRequest(r *http.Request) *Request {
	return &Request{Headers: r.Header}
}

// Header returns the first value of the canonicalized header key.
func (r *Request) Header(key string) string {
	if r == nil || r.Headers == nil {
		return ""
	}
	return r.Headers.Get(key)
}

// Result is the outcome of an authentication attempt.
type Result struct {
	Authenticated bool

	// Identity is set only when Authenticated.
	Identity *Identity

	// Err is set only when not Authenticated.
	Err error

	Method Method
}

// Success creates a successful result.
func Success(id *Identity) *Result {
	return &Result{Authenticated: true, Identity: id, Method: id.Method}
}

// Failure creates a failed result.
func Failure(err error, method Method) *Result {
	return &Result{Err: err, Method: method}
}
