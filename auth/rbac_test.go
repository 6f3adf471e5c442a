package auth

import (
	"context"
	"errors"
	"testing"
)

func TestCatalogRBAC(t *testing.T) {
	rbac := CatalogRBAC()
	admin := &Identity{Principal: "root", Roles: []string{RoleAdmin}, Method: MethodJWT}
	editor := &Identity{Principal: "ana", Roles: []string{RoleEditor}, Method: MethodJWT}
	nobody := &Identity{Principal: "guest", Roles: []string{"viewer"}, Method: MethodJWT}

	tests := []struct {
		name     string
		subject  *Identity
		resource string
		action   string
		allowed  bool
	}{
		{"admin writes courses", admin, "courses", ActionWrite, true},
		{"admin writes admin users", admin, "adminUsers", ActionWrite, true},
		{"admin clears cache", admin, "cache", ActionWrite, true},
		{"editor writes courses", editor, "courses", ActionWrite, true},
		{"editor writes banners", editor, "banners", ActionWrite, true},
		{"editor writes admin users", editor, "adminUsers", ActionWrite, false},
		{"editor reads admin users", editor, "adminUsers", ActionRead, false},
		{"editor clears cache", editor, "cache", ActionWrite, false},
		{"unknown role", nobody, "courses", ActionWrite, false},
		{"anonymous", Anonymous(), "courses", ActionRead, false},
		{"nil subject", nil, "courses", ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rbac.Authorize(context.Background(), &AuthzRequest{
				Subject: tt.subject, Resource: tt.resource, Action: tt.action,
			})
			if tt.allowed && err != nil {
				t.Errorf("Authorize() error = %v, want allowed", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Errorf("Authorize() error = %v, want ErrForbidden", err)
			}
		})
	}
}

func TestRBAC_Inheritance(t *testing.T) {
	rbac := NewRBACAuthorizer(map[string]RoleConfig{
		"reader":  {Allow: []string{"read"}},
		"writer":  {Allow: []string{"news:write"}, Inherits: []string{"reader"}},
		"looping": {Inherits: []string{"looping", "writer"}},
	})
	id := &Identity{Principal: "x", Roles: []string{"looping"}, Method: MethodAPIKey}

	for _, req := range []*AuthzRequest{
		{Subject: id, Resource: "courses", Action: ActionRead},
		{Subject: id, Resource: "news", Action: ActionWrite},
	} {
		if err := rbac.Authorize(context.Background(), req); err != nil {
			t.Errorf("Authorize(%s:%s) error = %v", req.Resource, req.Action, err)
		}
	}
	err := rbac.Authorize(context.Background(), &AuthzRequest{Subject: id, Resource: "courses", Action: ActionWrite})
	var authzErr *AuthzError
	if !errors.As(err, &authzErr) || authzErr.Subject != "x" {
		t.Errorf("error = %v, want *AuthzError for x", err)
	}
}

func TestMatchPermission(t *testing.T) {
	tests := []struct {
		perm, resource, action string
		want                   bool
	}{
		{"*:*", "courses", "write", true},
		{"courses:write", "courses", "write", true},
		{"courses:write", "news", "write", false},
		{"*:read", "news", "write", false},
		{"read", "news", "read", true},
	}
	for _, tt := range tests {
		if got := matchPermission(tt.perm, tt.resource, tt.action); got != tt.want {
			t.Errorf("matchPermission(%q, %q, %q) = %v, want %v", tt.perm, tt.resource, tt.action, got, tt.want)
		}
	}
}
