// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

const IdentityKey contextKey = "identity"

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*rbac.Identity, error)
}

// Authenticator rejects requests without a bearer token with 401 and
// requests with an unverifiable or expired token with 403. The two failure
// codes are deliberately distinct: clients treat 401 as "log in" and 403 as
// "session is stale".
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("access denied: no token provided"),
				)
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole passes only identities whose role is in the given set.
// Fails closed: no identity means reject.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				core.JSONError(w, core.NewAppError(
					core.ErrForbidden,
					"insufficient permissions, requires one of: "+
						strings.Join(roles, ", "),
					http.StatusForbidden,
					"FORBIDDEN",
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireSuperAdmin(next http.Handler) http.Handler {
	return RequireRole(rbac.RoleSuperAdmin)(next)
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(rbac.RoleSuperAdmin, rbac.RoleOperatorAdmin)(next)
}

func RequireManagement(next http.Handler) http.Handler {
	return RequireRole(
		rbac.RoleSuperAdmin,
		rbac.RoleOperatorAdmin,
		rbac.RoleOperationsManager,
		rbac.RoleSalesManager,
	)(next)
}

// RequirePermission gates a route on the module/action matrix.
func RequirePermission(
	module, action string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if !rbac.HasPermission(identity.Role, module, action) {
				core.JSONError(w, core.NewAppError(
					core.ErrForbidden,
					"you do not have permission to "+action+" in "+module,
					http.StatusForbidden,
					"FORBIDDEN",
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelfOrAdmin allows access to a user-addressed route only to the
// addressed user themselves or to an admin-tier caller.
func RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			if identity == nil {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			targetID, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
			if err != nil {
				core.BadRequest(w, "invalid id")
				return
			}

			if identity.UserID != targetID && !identity.IsAdmin() {
				core.JSONError(w, core.ForbiddenError(
					"you may only access your own data",
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetIdentity(ctx context.Context) *rbac.Identity {
	if identity, ok := ctx.Value(IdentityKey).(*rbac.Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) int64 {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.UserID
	}
	return 0
}

func GetUserRole(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.Role
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetIdentity(ctx) != nil
}
