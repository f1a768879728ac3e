// Package renderer mengadaptasi html/template ke kontrak echo.Renderer.
// Handler hanya mengirim map context datar; template tidak pernah menerima
// handle store atau objek hidup lain.
package renderer

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/klinikita/pasien-admin/web"
)

type Renderer struct {
	templates *template.Template
}

// New memuat seluruh template dari embed FS.
func New() (*Renderer, error) {
	t, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
