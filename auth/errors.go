package auth

import "errors"

// Authentication errors.
var (
	ErrMissingCredentials = errors.New("auth: missing credentials")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrTokenMalformed     = errors.New("auth: token malformed")
	ErrInvalidAPIKeyEntry = errors.New("auth: invalid api key entry")
	ErrEmptySecret        = errors.New("auth: signing secret is empty")
)

// ErrForbidden is matched by every *AuthzError.
var ErrForbidden = errors.New("auth: access denied")
