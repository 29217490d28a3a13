// Package present turns a frozen SubmissionRecord into its two outward
// shapes: a human-readable summary and a stable JSON export.
package present

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/promptform/promptform/pkg/model"
)

const (
	// FileName is the suggested download name for JSON exports.
	FileName = "form_submission.json"
	// MIMEType is the content type of JSON exports.
	MIMEType = "application/json"

	emptyScalar = "Not provided"
	emptyList   = "None selected"
)

// HumanView renders the record as one "Label: value" line per field, in the
// form's field order. Empty scalars print "Not provided" and empty lists
// "None selected"; list values are comma-joined.
func HumanView(record model.SubmissionRecord) string {
	var builder strings.Builder
	for _, field := range record.Spec.Fields {
		builder.WriteString(field.Label)
		builder.WriteString(": ")
		builder.WriteString(displayValue(field, record.Values[field.Name]))
		builder.WriteByte('\n')
	}
	return builder.String()
}

func displayValue(field model.FieldSpec, value any) string {
	switch field.Type {
	case model.FieldTypeMultiselect:
		items := stringSlice(value)
		if len(items) == 0 {
			return emptyList
		}
		return strings.Join(items, ", ")
	case model.FieldTypeCheckbox:
		if value == true {
			return "Yes"
		}
		return "No"
	case model.FieldTypeNumber:
		if f, ok := value.(float64); ok && f != 0 {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return emptyScalar
	default:
		if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
		return emptyScalar
	}
}

// ExportJSON serializes the record with a fixed top-level key order
// (form_title, submitted_data, metadata), submitted_data keys in the form's
// field order, and 2-space indentation. Exporting the same record twice
// yields identical bytes.
func ExportJSON(record model.SubmissionRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")

	title, err := json.Marshal(record.Spec.Title)
	if err != nil {
		return nil, fmt.Errorf("present: marshal title: %w", err)
	}
	buf.WriteString(`"form_title":`)
	buf.Write(title)

	buf.WriteString(`,"submitted_data":{`)
	for i, field := range record.Spec.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, fmt.Errorf("present: marshal field name: %w", err)
		}
		buf.Write(name)
		buf.WriteByte(':')

		value, err := marshalValue(field, record.Values[field.Name])
		if err != nil {
			return nil, fmt.Errorf("present: marshal field %q: %w", field.Name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')

	buf.WriteString(`,"metadata":`)
	metadata, err := json.Marshal(exportMetadata{
		SubmittedAt: record.SubmittedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Fields:      fieldMetadata(record.Spec),
	})
	if err != nil {
		return nil, fmt.Errorf("present: marshal metadata: %w", err)
	}
	buf.Write(metadata)

	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("present: indent: %w", err)
	}
	return out.Bytes(), nil
}

type exportMetadata struct {
	SubmittedAt string        `json:"submitted_at"`
	Fields      []exportField `json:"fields"`
}

type exportField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

func fieldMetadata(spec model.FormSpec) []exportField {
	out := make([]exportField, 0, len(spec.Fields))
	for _, field := range spec.Fields {
		out = append(out, exportField{
			Name:  field.Name,
			Label: field.Label,
			Type:  string(field.Type),
		})
	}
	return out
}

func marshalValue(field model.FieldSpec, value any) ([]byte, error) {
	switch field.Type {
	case model.FieldTypeMultiselect:
		// An empty multiselect serializes as [], never null.
		items := stringSlice(value)
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	case model.FieldTypeCheckbox:
		return json.Marshal(value == true)
	case model.FieldTypeNumber:
		f, _ := value.(float64)
		return json.Marshal(f)
	default:
		s, _ := value.(string)
		return json.Marshal(s)
	}
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
