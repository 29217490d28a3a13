// Package promptform turns a natural-language prompt into a typed form
// specification, renders it, and presents submissions. The root package
// re-exports the common types and offers one-call entry points; the pkg/
// packages expose the full surface.
package promptform

import (
	"context"

	"github.com/promptform/promptform/pkg/classify"
	"github.com/promptform/promptform/pkg/model"
	"github.com/promptform/promptform/pkg/present"
	"github.com/promptform/promptform/pkg/render"
	"github.com/promptform/promptform/pkg/renderers/vanilla"
)

// FormSpec describes one generated form.
type FormSpec = model.FormSpec

// FieldSpec describes one form field.
type FieldSpec = model.FieldSpec

// FormState holds in-progress values keyed by field name.
type FormState = model.FormState

// SubmissionRecord is an immutable submission snapshot.
type SubmissionRecord = model.SubmissionRecord

// RenderOptions carries per-request rendering data.
type RenderOptions = render.Options

// NewClassifier exposes the classifier constructor from the top-level
// module.
func NewClassifier(options ...classify.Option) (*classify.Classifier, error) {
	return classify.New(options...)
}

// GenerateHTML classifies the prompt and renders the resulting form as an
// HTML page. It is the simplest entry point for callers that just want
// markup from a prompt.
func GenerateHTML(ctx context.Context, prompt string, options ...classify.Option) ([]byte, error) {
	classifier, err := classify.New(options...)
	if err != nil {
		return nil, err
	}
	spec, err := classifier.Classify(ctx, prompt, false)
	if err != nil {
		return nil, err
	}
	return vanilla.New().Render(ctx, spec, render.Options{})
}

// ExportSubmission serializes a submission record in the canonical JSON
// export shape.
func ExportSubmission(record SubmissionRecord) ([]byte, error) {
	return present.ExportJSON(record)
}
