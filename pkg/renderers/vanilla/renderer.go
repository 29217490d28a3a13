// Package vanilla renders a FormSpec as a dependency-free HTML page. Field
// widgets are built directly; the surrounding page chrome comes from an
// embedded pongo2 template.
package vanilla

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/promptform/promptform/pkg/model"
	"github.com/promptform/promptform/pkg/render"
)

const pageTemplate = "templates/form.html"

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	templateSet *pongo2.TemplateSet

	mu        sync.Mutex
	templates map[string]*pongo2.Template
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a Renderer over the embedded page template.
func New() *Renderer {
	return &Renderer{
		templateSet: pongo2.NewSet("promptform", pongo2.NewFSLoader(templateFS)),
		templates:   make(map[string]*pongo2.Template),
	}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the full form page. Rendering the same spec with the same
// options twice yields identical bytes.
func (r *Renderer) Render(ctx context.Context, spec model.FormSpec, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := spec.Check(); err != nil {
		return nil, fmt.Errorf("vanilla: %w", err)
	}

	values := options.Values.Seeded(spec)

	var fields strings.Builder
	for _, field := range spec.Fields {
		fields.WriteString(buildFieldMarkup(field, values[field.Name]))
	}

	tmpl, err := r.getTemplate(pageTemplate)
	if err != nil {
		return nil, err
	}

	out, err := tmpl.ExecuteBytes(pongo2.Context{
		"title":       spec.Title,
		"description": spec.Description,
		"fields":      fields.String(),
		"action":      options.Action,
		"session_id":  options.SessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla: execute template: %w", err)
	}
	return out, nil
}

func (r *Renderer) getTemplate(path string) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := r.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("vanilla: load template %q: %w", path, err)
	}
	r.templates[path] = tmpl
	return tmpl, nil
}
