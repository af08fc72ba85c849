package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegenerateSwapsIDAndKeepsData(t *testing.T) {
	s := FromCtx(httptest.NewRequest(http.MethodGet, "/", nil))
	s.Set("token", "tok")
	old := s.ID()

	s.Regenerate()

	assert.NotEqual(t, old, s.ID())
	assert.NotEmpty(t, s.ID())

	got, ok := s.GetString("token")
	require.True(t, ok)
	assert.Equal(t, "tok", got)
}

func TestClientSuppliedCookieIsNotKeptAcrossLogin(t *testing.T) {
	const fixed = "attacker-chosen-session-id"
	opts := DefaultOptions()

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromCtx(r)
		sess.Regenerate()
		sess.Set("token", "tok")
		require.NoError(t, sess.Save(w))
	})
	handler = Middleware(opts)(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.AddCookie(&http.Cookie{Name: opts.CookieName, Value: fixed})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		if c.Name == opts.CookieName {
			assert.NotEqual(t, fixed, c.Value)
			assert.NotEmpty(t, c.Value)
			return
		}
	}
	t.Fatalf("no %s cookie written", opts.CookieName)
}
