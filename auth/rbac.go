package auth

import (
	"context"
	"strings"
)

// RoleConfig lists "resource:action" permissions for a role. "*" matches
// any resource or action. Deny wins over Allow within a role.
type RoleConfig struct {
	Allow    []string
	Deny     []string
	Inherits []string
}

// RBACAuthorizer grants access when any of the subject's roles, or the
// roles they inherit, permits the request.
type RBACAuthorizer struct {
	roles map[string]RoleConfig
}

// NewRBACAuthorizer creates an authorizer over roles.
func NewRBACAuthorizer(roles map[string]RoleConfig) *RBACAuthorizer {
	return &RBACAuthorizer{roles: roles}
}

// CatalogRBAC returns the catalog's role table: editors write every entity
// except admin users, admins may do anything.
func CatalogRBAC() *RBACAuthorizer {
	return NewRBACAuthorizer(map[string]RoleConfig{
		RoleEditor: {
			Allow: []string{"*:read", "*:write"},
			Deny:  []string{"adminUsers:*", "cache:*"},
		},
		RoleAdmin: {
			Allow: []string{"*:*"},
		},
	})
}

// Name returns "rbac".
func (a *RBACAuthorizer) Name() string { return "rbac" }

// Authorize checks every effective role of the subject.
func (a *RBACAuthorizer) Authorize(_ context.Context, req *AuthzRequest) error {
	if req.Subject.IsAnonymous() {
		return &AuthzError{Resource: req.Resource, Action: req.Action, Reason: "no identity provided"}
	}

	for _, name := range a.effectiveRoles(req.Subject.Roles) {
		if role, ok := a.roles[name]; ok && role.permits(req.Resource, req.Action) {
			return nil
		}
	}

	return &AuthzError{
		Subject:  req.Subject.Principal,
		Resource: req.Resource,
		Action:   req.Action,
		Reason:   "no role permits this action",
	}
}

// effectiveRoles expands inheritance breadth first, once per role.
func (a *RBACAuthorizer) effectiveRoles(roles []string) []string {
	seen := make(map[string]bool)
	queue := append([]string(nil), roles...)
	var out []string

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
		queue = append(queue, a.roles[name].Inherits...)
	}
	return out
}

func (r RoleConfig) permits(resource, action string) bool {
	for _, p := range r.Deny {
		if matchPermission(p, resource, action) {
			return false
		}
	}
	for _, p := range r.Allow {
		if matchPermission(p, resource, action) {
			return true
		}
	}
	return false
}

// matchPermission matches "resource:action" with "*" wildcards. A single
// segment is treated as an action on any resource.
func matchPermission(perm, resource, action string) bool {
	res, act, ok := strings.Cut(perm, ":")
	if !ok {
		res, act = "*", perm
	}
	return (res == "*" || res == resource) && (act == "*" || act == action)
}

var _ Authorizer = (*RBACAuthorizer)(nil)
