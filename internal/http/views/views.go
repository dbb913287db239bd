// Package views renders the persona HTML pages.
//
// Templates are embedded in the binary. Each page is parsed together with
// the shared layout into its own template set, so every page can define
// its own "content" block.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates
var templateFS embed.FS

// Pages are addressed by the view names the persona service returns.
var pages = []string{
	"personas/list",
	"personas/add",
	"personas/edit",
}

// Renderer executes parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page. It fails if any template is malformed.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}

	for _, name := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("views.New: parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

// Render executes the named page into a buffer and only then writes it
// with a 200 status. A template error leaves w untouched, so the caller
// can still send an error response.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
