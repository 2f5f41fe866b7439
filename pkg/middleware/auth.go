package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/luminabooks/lumina/pkg/auth"
	"github.com/luminabooks/lumina/pkg/response"
)

type identityKey struct{}

// Identity is the authenticated caller stored in the request context by
// Auth. Role is the role as of token issuance; authorization gates that
// need the current role must resolve it against the store.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Auth requires a valid Bearer token. A missing token and an invalid or
// expired one are both rejected with 401 — never passed through as an
// anonymous identity.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(w, "Access denied")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			response.Unauthorized(w, "Access denied")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		ident := Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
		ctx := context.WithValue(r.Context(), identityKey{}, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromCtx returns the authenticated identity, if any.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	return ident, ok
}

// UserIDFromCtx returns the authenticated user's ID, if any.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	ident, ok := IdentityFromCtx(ctx)
	return ident.UserID, ok
}
