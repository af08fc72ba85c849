// Package views renders the server-side HTML pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/brookxc/menuadmin/pkg/logger"
)

//go:embed templates/*.html
var files embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	// trustedURL marks server-constructed URLs and validated data URIs as
	// safe so html/template does not strip them from src attributes.
	"trustedURL": func(s string) template.URL { return template.URL(s) },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}).ParseFS(files, "templates/*.html"))

// Render writes the named template with the given status code. Render
// failures after the header is written can only be logged.
func Render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render template", "template", name, "error", err)
		fmt.Fprint(w, "<p>Something went wrong rendering this page.</p>")
	}
}
