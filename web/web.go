// Package web holds the dashboard templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var Templates embed.FS

// ParseTemplates parses every page template.
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(Templates, "templates/*.html")
}
