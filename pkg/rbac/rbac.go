// Package rbac provides role-based access control middleware. The token
// only proves identity; the role is resolved from the role store on every
// request, so revoking a role takes effect immediately instead of when
// outstanding tokens expire.
package rbac

import (
	"net/http"

	"github.com/pmin574/pc-diamond-edge/pkg/middleware"
	"github.com/pmin574/pc-diamond-edge/pkg/response"
)

// resolver looks up the current role for a user ID. Installed at bootstrap
// by SetResolver; while unset, HasRole denies everything.
var resolver func(userID uint) string

// SetResolver installs the role lookup used by HasRole.
func SetResolver(fn func(userID uint) string) {
	resolver = fn
}

// HasRole returns middleware that allows access only to users whose stored
// role is one of the given roles. Requires middleware.Auth to have run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := middleware.UserIDFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}
			if resolver == nil || !allowed[resolver(userID)] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest returns middleware that blocks authenticated users (login/register).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserIDFromCtx(r); ok {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
