package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRouteURL(t *testing.T) {
	r := New()
	r.Get("/restaurant/{id}", "menu.public", okHandler)

	url, err := r.URL("menu.public", map[string]string{"id": "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "/restaurant/abc123", url)

	_, err = r.URL("menu.public", nil)
	assert.Error(t, err, "missing params must not build a partial URL")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := New()
	g := r.Group("/api", tag("outer"))
	g.Get("/restaurants", "restaurants.list", okHandler, tag("inner"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/restaurants", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Get("/healthz", "healthz", okHandler)
	r.Post("/api/login", "auth.login", okHandler)
	r.Get("/internal", "", okHandler)

	infos := r.Routes()
	require.Len(t, infos, 2, "unnamed routes are not listed")

	path, ok := r.Path("auth.login")
	require.True(t, ok)
	assert.Equal(t, "/api/login", path)
}
