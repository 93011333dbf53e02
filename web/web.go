// Package web holds the server rendered pages.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page with the helpers they use.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string { return t.Local().Format("2006-01-02 15:04:05") },
		"truncate": func(s string, n int) string {
			r := []rune(s)
			if len(r) <= n {
				return s
			}
			return string(r[:n]) + "…"
		},
	}).ParseFS(files, "templates/*.html"))
}
