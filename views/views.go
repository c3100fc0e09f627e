// Package views embeds the HTML templates rendered by the handlers.
package views

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates
var templateFS embed.FS

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"join": strings.Join,
}

// Templates parses every embedded template. Pages are addressed by the name in
// their define block, e.g. "questions/show".
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(functions).ParseFS(templateFS,
		"templates/*.html",
		"templates/questions/*.html",
	))
}
