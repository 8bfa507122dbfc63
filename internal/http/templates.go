package http

import (
	"embed"
	"html/template"
	"path/filepath"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// LoadTemplates parses the HTML templates. With an empty path the templates
// compiled into the binary are used; otherwise every *.html file in path is
// parsed, which allows editing templates without rebuilding.
func LoadTemplates(path string) (*template.Template, error) {
	tmpl := template.New("")
	if path == "" {
		return tmpl.ParseFS(embeddedTemplates, "templates/*.html")
	}
	return tmpl.ParseGlob(filepath.Join(path, "*.html"))
}
