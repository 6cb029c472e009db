package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubResolver struct {
	roles []string
	err   error
}

func (s *stubResolver) RolesFor(userUuid string) ([]string, error) {
	return s.roles, s.err
}

func gatedRequest(t *testing.T, resolver *stubResolver, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/gated",
		func(c *gin.Context) {
			if authed {
				c.Set(UserIDKey, "U1")
			}
		},
		RequireRole(resolver, "admin"),
		func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRolePassesWithRole(t *testing.T) {
	w := gatedRequest(t, &stubResolver{roles: []string{"user", "admin"}}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireRoleDeniesResolvedMissingRole(t *testing.T) {
	w := gatedRequest(t, &stubResolver{roles: []string{"user"}}, true)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

// A resolution failure must never read as a denial; the client should
// retry, not conclude it lacks the role.
func TestRequireRoleUnresolvedIsRetryableNotForbidden(t *testing.T) {
	w := gatedRequest(t, &stubResolver{err: errors.New("resolver down")}, true)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if w.Code == http.StatusForbidden {
		t.Fatal("unresolved roles must not deny")
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	w := gatedRequest(t, &stubResolver{roles: []string{"admin"}}, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
