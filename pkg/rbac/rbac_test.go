package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmin574/pc-diamond-edge/pkg/auth"
	"github.com/pmin574/pc-diamond-edge/pkg/middleware"
)

func gated(roles ...string) http.Handler {
	reached := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.Auth(HasRole(roles...)(reached))
}

func bearerRequest(t *testing.T, userID uint, claimRole string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(userID, claimRole)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHasRoleReadsRoleStoreNotToken(t *testing.T) {
	// The token still claims admin; the store has since demoted the user.
	// The stored role wins, so revocation is immediate.
	SetResolver(func(uint) string { return "customer" })
	t.Cleanup(func() { SetResolver(nil) })

	rec := httptest.NewRecorder()
	gated("admin").ServeHTTP(rec, bearerRequest(t, 42, "admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHasRoleAllowsStoredRole(t *testing.T) {
	SetResolver(func(userID uint) string {
		if userID == 42 {
			return "admin"
		}
		return "customer"
	})
	t.Cleanup(func() { SetResolver(nil) })

	// Claim role is irrelevant either way.
	rec := httptest.NewRecorder()
	gated("admin").ServeHTTP(rec, bearerRequest(t, 42, "customer"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	gated("admin").ServeHTTP(rec, bearerRequest(t, 7, "admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHasRoleDeniesWithoutResolver(t *testing.T) {
	rec := httptest.NewRecorder()
	gated("admin").ServeHTTP(rec, bearerRequest(t, 42, "admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHasRoleRequiresToken(t *testing.T) {
	rec := httptest.NewRecorder()
	gated("admin").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuestBlocksAuthenticated(t *testing.T) {
	handler := middleware.OptionalAuth(Guest(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, 7, "customer"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
