package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wavelaunch/studio-os/backend/internal/config"
	"github.com/wavelaunch/studio-os/backend/internal/domain"
	"github.com/wavelaunch/studio-os/backend/internal/rbac"
)

const testSecret = "test-secret"

func testHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.Expiration = 3600

	h, err := NewHandler(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return h
}

func signedCookie(t *testing.T, role domain.Role, sub int64) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   strconv.FormatInt(sub, 10),
		},
	})
	ss, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return &http.Cookie{Name: sessionCookieName, Value: ss}
}

// spyHandler records whether the protected operation ran.
type spyHandler struct {
	called bool
}

func (s *spyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.called = true
	w.WriteHeader(http.StatusOK)
}

func TestAuthRejectsMissingSession(t *testing.T) {
	h := testHandler(t)
	spy := &spyHandler{}

	req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
	rec := httptest.NewRecorder()
	h.auth(spy).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if spy.called {
		t.Error("protected operation ran without a session")
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	h := testHandler(t)
	spy := &spyHandler{}

	req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	h.auth(spy).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if spy.called {
		t.Error("protected operation ran with an invalid token")
	}
}

func TestAuthPassesValidSession(t *testing.T) {
	h := testHandler(t)
	spy := &spyHandler{}

	req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
	req.AddCookie(signedCookie(t, domain.RoleOperator, 42))
	rec := httptest.NewRecorder()
	h.auth(spy).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !spy.called {
		t.Error("protected operation did not run for a valid session")
	}
}

func TestRequiredRoleForbidsOutsiders(t *testing.T) {
	h := testHandler(t)

	for _, role := range []domain.Role{domain.RoleCreator, domain.Role("INTERN"), domain.Role("")} {
		spy := &spyHandler{}
		guarded := h.auth(h.RequiredRole(rbac.ManageRoles)(spy))

		req := httptest.NewRequest(http.MethodGet, "/deals", nil)
		req.AddCookie(signedCookie(t, role, 7))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("role %q: status = %d, want 403", role, rec.Code)
		}
		if spy.called {
			t.Errorf("role %q: protected operation ran despite missing role", role)
		}
	}
}

func TestRequiredRolePassesManageRoles(t *testing.T) {
	h := testHandler(t)

	for _, role := range rbac.ManageRoles {
		spy := &spyHandler{}
		guarded := h.auth(h.RequiredRole(rbac.ManageRoles)(spy))

		req := httptest.NewRequest(http.MethodGet, "/deals", nil)
		req.AddCookie(signedCookie(t, role, 7))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("role %q: status = %d, want 200", role, rec.Code)
		}
		if !spy.called {
			t.Errorf("role %q: protected operation did not run", role)
		}
	}
}

// Unauthenticated and forbidden are different failures: the first means
// sign in again, the second means the account lacks the role.
func TestUnauthenticatedAndForbiddenAreDistinct(t *testing.T) {
	h := testHandler(t)
	guarded := h.auth(h.RequiredRole([]domain.Role{domain.RoleAdmin})(&spyHandler{}))

	noSession := httptest.NewRequest(http.MethodGet, "/users", nil)
	recNoSession := httptest.NewRecorder()
	guarded.ServeHTTP(recNoSession, noSession)

	wrongRole := httptest.NewRequest(http.MethodGet, "/users", nil)
	wrongRole.AddCookie(signedCookie(t, domain.RoleCreator, 7))
	recWrongRole := httptest.NewRecorder()
	guarded.ServeHTTP(recWrongRole, wrongRole)

	if recNoSession.Code != http.StatusUnauthorized {
		t.Errorf("no session: status = %d, want 401", recNoSession.Code)
	}
	if recWrongRole.Code != http.StatusForbidden {
		t.Errorf("wrong role: status = %d, want 403", recWrongRole.Code)
	}
}
