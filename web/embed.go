package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// TemplatesFS embeds HTML templates for server-side rendering.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// Funcs are the helpers available inside page templates.
var Funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"pct":   func(d decimal.Decimal) string { return d.Round(0).String() },
	"date": func(t *time.Time) string {
		if t == nil {
			return "no deadline"
		}
		return t.Format("02 Jan 2006")
	},
	"datetime": func(t time.Time) string { return t.Local().Format("02 Jan 2006 15:04") },
}

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(Funcs).ParseFS(TemplatesFS, "templates/*.html")
}
