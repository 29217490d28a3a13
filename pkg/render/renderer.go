// Package render defines the renderer contracts and the registry the HTTP
// surface resolves its configured renderer from.
package render

import (
	"context"

	"github.com/promptform/promptform/pkg/model"
)

// Options carry per-request data renderers can fold into their output
// without mutating the spec.
type Options struct {
	// Values pre-populates rendered controls, keyed by field name. A nil
	// map renders every field at its zero value.
	Values model.FormState
	// Action is the URL the rendered form posts back to. Renderers that do
	// not emit a form element ignore it.
	Action string
	// SessionID identifies the session the output belongs to, for renderers
	// that carry it through to the next request.
	SessionID string
}

// Renderer converts a FormSpec into a byte representation such as HTML.
// Rendering never mutates the spec or the values, so rendering the same
// inputs twice yields identical bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, spec model.FormSpec, options Options) ([]byte, error)
}

// Collector runs an interactive fill of the form, seeded from prior values.
// It returns the collected state and whether the user confirmed submission.
type Collector interface {
	Collect(ctx context.Context, spec model.FormSpec, prior model.FormState) (model.FormState, bool, error)
}
