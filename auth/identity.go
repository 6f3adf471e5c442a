package auth

import (
	"slices"
	"time"
)

// Method indicates how an identity was authenticated.
type Method string

const (
	MethodJWT       Method = "jwt"
	MethodAPIKey    Method = "api_key"
	MethodAnonymous Method = "anonymous"
)

// Role names understood by CatalogRBAC.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Identity is an authenticated principal.
type Identity struct {
	Principal string
	Roles     []string
	Method    Method

	// Claims holds token claims or key metadata.
	Claims map[string]any

	// ExpiresAt is zero when the identity never expires.
	ExpiresAt time.Time
}

// HasRole reports whether the identity carries role.
func (id *Identity) HasRole(role string) bool {
	return slices.Contains(id.Roles, role)
}

// IsExpired reports whether the identity expired before now.
func (id *Identity) IsExpired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && now.After(id.ExpiresAt)
}

// IsAnonymous reports whether no principal was authenticated.
func (id *Identity) IsAnonymous() bool {
	return id == nil || id.Method == MethodAnonymous || id.Principal == ""
}

// Anonymous returns the identity used for unauthenticated reads.
func Anonymous() *Identity {
	return &Identity{Principal: "anonymous", Method: MethodAnonymous}
}
