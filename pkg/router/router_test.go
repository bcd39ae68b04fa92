package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRouteReversal(t *testing.T) {
	r := New()
	r.Get("/products/{id}", "products.show", ok)

	url, err := r.URL("products.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/products/7", url)
}

func TestURLMissingParams(t *testing.T) {
	r := New()
	r.Get("/products/{id}", "products.show", ok)

	_, err := r.URL("products.show", nil)
	assert.Error(t, err)
}

func TestURLUnknownRoute(t *testing.T) {
	r := New()
	_, err := r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupPrefixesPaths(t *testing.T) {
	r := New()
	api := r.Group("/api")
	admin := api.Group("/admin")
	admin.Get("/orders", "admin.orders", ok)

	path, found := r.Path("admin.orders")
	require.True(t, found)
	assert.Equal(t, "/api/admin/orders", path)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var order []string

	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/api", mw("outer"))
	g.Get("/x", "x", ok, mw("inner"))

	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	r.Handler().ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	r.Get("/b", "b", ok)
	r.Get("/a", "a", ok)
	r.Post("/a", "a.post", ok)

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/a", infos[0].Path)
	assert.Equal(t, http.MethodGet, infos[0].Method)
	assert.Equal(t, http.MethodPost, infos[1].Method)
	assert.Equal(t, "/b", infos[2].Path)
}
