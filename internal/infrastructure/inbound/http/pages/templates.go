package pages

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page set. Each page defines a template named
// after its file so gin's HTML renderer can address it by name.
func Templates() (*template.Template, error) {
	return template.New("pages").
		Funcs(template.FuncMap{
			"formatTime": func(t time.Time) string {
				if t.IsZero() {
					return ""
				}
				return t.Local().Format("2006-01-02 15:04")
			},
		}).
		ParseFS(templateFS, "templates/*.html")
}
