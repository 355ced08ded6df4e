// Package view renders the portal's HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	PageLogin = "login"
	PageIndex = "index"
	PageHash  = "hash"
)

// Data is the model shared by every page.
type Data struct {
	Authed      bool
	DisplayName string
	Username    string
	Error       string

	// hash page
	ShowHashLink bool
	Salt         string
	Hash         string
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{PageLogin, PageIndex, PageHash} {
		t, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", page, err)
		}
		pages[page] = t
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
