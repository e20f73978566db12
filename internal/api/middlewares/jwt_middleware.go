package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"creditdesk/internal/auth"
	"creditdesk/pkg/utils"
)

// JWTMiddleware verifies the bearer credential and stores the decoded
// identity in the request context. Absence or failure means "no session" and
// the caller must re-authenticate.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			utils.WriteError(w, "Unauthorized: Missing Bearer token", http.StatusUnauthorized)
			return
		}

		identity, err := auth.ResolveToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				utils.WriteError(w, "token expired", http.StatusUnauthorized)
				return
			}
			utils.WriteError(w, "invalid login token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.IdentityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken reads the Authorization header, falling back to the Bearer
// cookie browser clients carry.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("Bearer"); err == nil {
		return strings.TrimPrefix(cookie.Value, "Bearer ")
	}
	return ""
}
