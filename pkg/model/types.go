package model

import "fmt"

// FieldType enumerates the input kinds a form can carry. Renderers dispatch
// on it with exhaustive switches so a new type fails loudly everywhere it
// matters instead of silently falling through.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeEmail       FieldType = "email"
	FieldTypeTel         FieldType = "tel"
	FieldTypeNumber      FieldType = "number"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeDate        FieldType = "date"
	FieldTypeCheckbox    FieldType = "checkbox"
)

// FieldTypes lists every valid FieldType in a stable order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeEmail,
		FieldTypeTel,
		FieldTypeNumber,
		FieldTypeTextarea,
		FieldTypeSelect,
		FieldTypeMultiselect,
		FieldTypeDate,
		FieldTypeCheckbox,
	}
}

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeNumber,
		FieldTypeTextarea, FieldTypeSelect, FieldTypeMultiselect,
		FieldTypeDate, FieldTypeCheckbox:
		return true
	}
	return false
}

// TakesOptions reports whether the type draws its values from an options
// list.
func (t FieldType) TakesOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiselect
}

// FieldSpec models an individual input inside a form. Name is the stable
// key used for state slots and submission payloads; Label is display text.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Type        FieldType `json:"type" yaml:"type"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// HasOption reports whether value is one of the field's declared options.
func (f FieldSpec) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// ZeroValue returns the type-appropriate default used to seed a widget that
// has no prior state.
func (f FieldSpec) ZeroValue() any {
	switch f.Type {
	case FieldTypeMultiselect:
		return []string{}
	case FieldTypeCheckbox:
		return false
	case FieldTypeNumber:
		return float64(0)
	default:
		return ""
	}
}

// FormSpec is the declarative description of a form. A FormSpec is never
// mutated after it is handed to a renderer; classification produces a fresh
// value per prompt.
type FormSpec struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

// Field returns the FieldSpec with the given name.
func (s FormSpec) Field(name string) (FieldSpec, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// Clone returns a deep copy so callers can hand out specs without sharing
// the options slices.
func (s FormSpec) Clone() FormSpec {
	out := FormSpec{
		Title:       s.Title,
		Description: s.Description,
	}
	if len(s.Fields) > 0 {
		out.Fields = make([]FieldSpec, len(s.Fields))
		for i, field := range s.Fields {
			copied := field
			if len(field.Options) > 0 {
				copied.Options = append([]string(nil), field.Options...)
			}
			out.Fields[i] = copied
		}
	}
	return out
}

// Check enforces the structural invariants that the wire schema cannot
// express: non-empty title and fields, valid field types, unique names, and
// options present exactly for choice types.
func (s FormSpec) Check() error {
	if s.Title == "" {
		return fmt.Errorf("model: form title is required")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("model: form %q has no fields", s.Title)
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for i, field := range s.Fields {
		if field.Name == "" {
			return fmt.Errorf("model: fields[%d] has no name", i)
		}
		if field.Label == "" {
			return fmt.Errorf("model: fields[%d] (%s) has no label", i, field.Name)
		}
		if !field.Type.Valid() {
			return fmt.Errorf("model: fields[%d] (%s) has unknown type %q", i, field.Name, field.Type)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("model: duplicate field name %q", field.Name)
		}
		seen[field.Name] = struct{}{}
		if field.Type.TakesOptions() && len(field.Options) == 0 {
			return fmt.Errorf("model: fields[%d] (%s) is %s but has no options", i, field.Name, field.Type)
		}
		if !field.Type.TakesOptions() && len(field.Options) > 0 {
			return fmt.Errorf("model: fields[%d] (%s) is %s and must not carry options", i, field.Name, field.Type)
		}
	}
	return nil
}
