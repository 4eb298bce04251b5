// Package views holds the server-rendered HTML pages.
package views

import (
	"embed"
	"html/template"
	"net/url"
)

//go:embed templates/*.html
var files embed.FS

const (
	Login    = "login.html"
	Register = "register.html"
	List     = "list.html"
	Weather  = "weather.html"
	Error    = "error.html"
)

// Templates parses every page together with the shared partials.
func Templates() *template.Template {
	funcs := template.FuncMap{"pathEscape": url.PathEscape}
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))
}
