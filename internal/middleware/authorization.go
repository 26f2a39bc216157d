package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Authorize reports whether the authenticated request carries the required
// permission. It consults only the permission claims extracted by
// AuthMiddleware.
func Authorize(ctx context.Context, required string) bool {
	permissions, ok := GetUserPermissions(ctx)
	if !ok {
		return false
	}
	for _, p := range permissions {
		if p == required {
			return true
		}
	}
	return false
}

// RequirePermission middleware rejects requests whose token does not carry
// the named permission
func RequirePermission(permission string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Authorize(r.Context(), permission) {
				role, _ := GetUserRole(r.Context())
				logger.Warn("Permission denied",
					zap.String("role", role),
					zap.String("required_permission", permission),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
