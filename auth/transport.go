package auth

import (
	"errors"
	"net/http"
)

// ErrorHandler writes an auth failure. err matches ErrMissingCredentials,
// ErrInvalidCredentials, ErrTokenExpired, ErrTokenMalformed or
// ErrForbidden; any other error is internal.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// RequireIdentity authenticates every request and stores the identity in
// the request context. Requests without valid credentials are rejected.
func RequireIdentity(authn Authenticator, onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := NewRequest(r)
			if !authn.Supports(req) {
				onError(w, r, ErrMissingCredentials)
				return
			}

			result, err := authn.Authenticate(r.Context(), req)
			if err != nil {
				onError(w, r, err)
				return
			}
			if !result.Authenticated {
				onError(w, r, result.Err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), result.Identity)))
		})
	}
}

// RequirePermission authorizes the identity placed by RequireIdentity.
func RequirePermission(authz Authorizer, resource, action string, onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := authz.Authorize(r.Context(), &AuthzRequest{
				Subject:  IdentityFromContext(r.Context()),
				Resource: resource,
				Action:   action,
			})
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsUnauthenticated reports whether err should map to 401 rather than 403.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed)
}
