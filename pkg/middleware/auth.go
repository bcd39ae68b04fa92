package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pmin574/pc-diamond-edge/pkg/auth"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
)

type userIDKey struct{}

// Auth validates the Bearer token and stores the authenticated user ID in
// the request context. The token proves identity only; authorization is
// resolved downstream from the role store.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores the identity when a valid Bearer token is present
// but lets the request through either way. Used on endpoints that serve
// both guests and logged-in customers (checkout).
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token != "" && token != r.Header.Get("Authorization") {
			if claims, err := auth.ValidateToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, claims.UserID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromCtx returns the authenticated user's ID.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey{}).(uint)
	return id, ok
}
