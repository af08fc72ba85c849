package middleware

import (
	"net/http"
	"strings"

	"github.com/brookxc/menuadmin/pkg/auth"
	"github.com/brookxc/menuadmin/pkg/response"
	"github.com/brookxc/menuadmin/pkg/session"
)

// RequireSession gates the management surface on a valid operator session.
// The signed token lives in the Redis-backed session; an expired or missing
// token sends API callers a 401 JSON body and page requests a redirect to
// the login page. The public menu routes are never behind this middleware.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)

		token, ok := sess.GetString("token")
		if ok {
			if _, err := auth.ValidateToken(token); err == nil {
				next.ServeHTTP(w, r)
				return
			}
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			response.Unauthorized(w)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}
