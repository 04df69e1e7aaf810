package middleware

import (
	"net/http"
	"testing"

	"github.com/renova/storefront/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		identity *domain.Identity
		code     int
		called   bool
	}{
		{name: "admin allowed", identity: &domain.Identity{Roles: []domain.Role{domain.RoleAdmin}}, code: http.StatusOK, called: true},
		{name: "client forbidden", identity: &domain.Identity{Roles: []domain.Role{domain.RoleClient}}, code: http.StatusForbidden},
		{name: "anonymous unauthorized", identity: nil, code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &stubSession{identity: tt.identity}

			rec, called := runMiddleware(t, RBAC(session, domain.RoleAdmin))

			if called != tt.called || rec.Code != tt.code {
				t.Errorf("want called=%v code=%d, got called=%v code=%d", tt.called, tt.code, called, rec.Code)
			}
		})
	}
}

func TestRBAC_AnyOfSeveralRoles(t *testing.T) {
	session := &stubSession{identity: &domain.Identity{Roles: []domain.Role{domain.RoleRepresentative}}}

	_, called := runMiddleware(t, RBAC(session, domain.RoleAdmin, domain.RoleRepresentative))

	if !called {
		t.Error("representative should pass")
	}
}
