// Package rbac provides role-based access control middleware.
package rbac

import (
	"context"
	"net/http"

	"github.com/luminabooks/lumina/pkg/middleware"
	"github.com/luminabooks/lumina/pkg/response"
)

// RoleResolver resolves a user's current stored role. The gate checks the
// store rather than trusting the role baked into the token, so a demoted
// admin loses access without waiting for token expiry.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// HasRole returns middleware that allows access only to users whose
// stored role is one of the given roles. Requires middleware.Auth to
// have already run.
func HasRole(resolver RoleResolver, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := middleware.UserIDFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "Access denied")
				return
			}

			role, err := resolver.RoleOf(r.Context(), userID)
			if err != nil || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
