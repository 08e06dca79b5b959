// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

type stubVerifier struct {
	identity *rbac.Identity
	err      error
}

func (s *stubVerifier) Verify(
	_ context.Context,
	_ string,
) (*rbac.Identity, error) {
	return s.identity, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func identityRequest(identity *rbac.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if identity == nil {
		return req
	}
	ctx := context.WithValue(req.Context(), IdentityKey, identity)
	return req.WithContext(ctx)
}

func TestAuthenticatorMissingTokenIs401(t *testing.T) {
	handler := Authenticator(&stubVerifier{})(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token provided")
}

func TestAuthenticatorInvalidTokenIs403(t *testing.T) {
	verifier := &stubVerifier{
		err: fmt.Errorf("verify: %w", core.ErrTokenInvalid),
	}
	handler := Authenticator(verifier)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticatorExpiredTokenIs403(t *testing.T) {
	verifier := &stubVerifier{
		err: fmt.Errorf("verify: %w", core.ErrTokenExpired),
	}
	handler := Authenticator(verifier)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestAuthenticatorStoresIdentity(t *testing.T) {
	tenantID := int64(4)
	identity := &rbac.Identity{
		UserID:   9,
		Role:     rbac.RoleStaff,
		TenantID: &tenantID,
	}

	var got *rbac.Identity
	handler := Authenticator(&stubVerifier{identity: identity})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = GetIdentity(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, int64(9), got.UserID)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(rbac.RoleOperatorAdmin)(okHandler())

	t.Run("no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, identityRequest(nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, identityRequest(&rbac.Identity{
			Role: rbac.RoleStaff,
		}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("allowed role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, identityRequest(&rbac.Identity{
			Role: rbac.RoleOperatorAdmin,
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	handler := RequirePermission(
		rbac.ModulePayments, rbac.ActionEdit,
	)(okHandler())

	t.Run("accountant edits payments", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, identityRequest(&rbac.Identity{
			Role: rbac.RoleAccountant,
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("staff cannot edit payments", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, identityRequest(&rbac.Identity{
			Role: rbac.RoleStaff,
		}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireSelfOrAdmin(t *testing.T) {
	router := chi.NewRouter()
	router.With(RequireSelfOrAdmin("id")).Get(
		"/users/{id}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	)

	do := func(identity *rbac.Identity, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if identity != nil {
			req = req.WithContext(context.WithValue(
				req.Context(), IdentityKey, identity))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("self allowed", func(t *testing.T) {
		rec := do(&rbac.Identity{UserID: 5, Role: rbac.RoleStaff}, "/users/5")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		rec := do(&rbac.Identity{UserID: 5, Role: rbac.RoleStaff}, "/users/6")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin allowed for other user", func(t *testing.T) {
		rec := do(
			&rbac.Identity{UserID: 5, Role: rbac.RoleOperatorAdmin},
			"/users/6",
		)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no identity unauthorized", func(t *testing.T) {
		rec := do(nil, "/users/5")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(req))

	req.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, ExtractToken(req))
}
