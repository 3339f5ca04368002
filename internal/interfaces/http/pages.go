package http

import (
	"embed"
	"html/template"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"base": filepath.Base,
}).ParseFS(templatesFS, "templates/*.html"))

// indexPage datos del formulario de consulta.
type indexPage struct {
	Flash string
	Lote  string
}

// lotePage datos de las páginas de carga y descarga.
type lotePage struct {
	Lote      string
	Files     []string
	HasReport bool
}

func render(c *fiber.Ctx, name string, data any) error {
	c.Type("html", "utf-8")
	return pages.ExecuteTemplate(c.Response().BodyWriter(), name, data)
}
