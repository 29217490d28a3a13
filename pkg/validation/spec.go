// Package validation checks externally produced form specifications before
// they are allowed anywhere near a renderer. Statically defined templates
// and synthesizer output are trusted by construction but are held to the
// same schema in tests.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/promptform/promptform/pkg/model"
)

// Issue is a single validation failure with the JSON path that produced it.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Error aggregates every issue found in one validation pass.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation: spec rejected"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
			continue
		}
		parts = append(parts, issue.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// specSchema mirrors the FormSpec wire shape. Cross-field rules the schema
// cannot express (unique names, options exactly for choice types) are
// enforced afterwards by model.FormSpec.Check.
var specSchema = buildSpecSchema()

func buildSpecSchema() *openapi3.Schema {
	typeEnum := make([]any, 0, len(model.FieldTypes()))
	for _, ft := range model.FieldTypes() {
		typeEnum = append(typeEnum, string(ft))
	}

	field := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("label", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("type", openapi3.NewStringSchema().WithEnum(typeEnum...)).
		WithProperty("required", openapi3.NewBoolSchema()).
		WithProperty("placeholder", openapi3.NewStringSchema()).
		WithProperty("options", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	field.Required = []string{"name", "label", "type"}

	fields := openapi3.NewArraySchema().WithItems(field)
	fields.MinItems = 1

	spec := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("fields", fields)
	spec.Required = []string{"title", "fields"}
	return spec
}

// Spec parses raw JSON and validates it as a FormSpec. On success the
// decoded spec is returned; on failure the error is always a *Error whose
// issues identify the offending paths.
func Spec(raw []byte) (model.FormSpec, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.FormSpec{}, &Error{Issues: []Issue{{Message: fmt.Sprintf("parse JSON: %v", err)}}}
	}

	if err := specSchema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		return model.FormSpec{}, &Error{Issues: issuesFromSchemaErr(err)}
	}

	var spec model.FormSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return model.FormSpec{}, &Error{Issues: []Issue{{Message: fmt.Sprintf("decode spec: %v", err)}}}
	}

	if err := spec.Check(); err != nil {
		return model.FormSpec{}, &Error{Issues: []Issue{{Message: err.Error()}}}
	}
	return spec, nil
}

func issuesFromSchemaErr(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		out := make([]Issue, 0, len(multi))
		for _, item := range multi {
			out = append(out, issuesFromSchemaErr(item)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{{
			Path:    pointerPath(schemaErr.JSONPointer()),
			Message: schemaErr.Reason,
		}}
	}
	return []Issue{{Message: err.Error()}}
}

func pointerPath(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return "/" + strings.Join(segments, "/")
}
