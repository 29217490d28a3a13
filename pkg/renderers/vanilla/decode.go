package vanilla

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/promptform/promptform/pkg/model"
)

// DecodeSubmission turns posted form values back into a FormState. Keys that
// do not belong to the spec are dropped, choice values are clamped to the
// field's options, and each value is coerced to the field type. Missing
// fields come back at their zero value so the result always covers the whole
// spec.
func DecodeSubmission(spec model.FormSpec, posted url.Values) model.FormState {
	state := make(model.FormState, len(spec.Fields))

	for _, field := range spec.Fields {
		raw, present := posted[field.Name]

		switch field.Type {
		case model.FieldTypeText, model.FieldTypeEmail, model.FieldTypeTel,
			model.FieldTypeTextarea, model.FieldTypeDate:
			state[field.Name] = first(raw)
		case model.FieldTypeNumber:
			state[field.Name] = decodeNumber(first(raw))
		case model.FieldTypeSelect:
			value := first(raw)
			if !field.HasOption(value) {
				value = ""
			}
			state[field.Name] = value
		case model.FieldTypeMultiselect:
			selected := make([]string, 0, len(raw))
			for _, value := range raw {
				if field.HasOption(value) {
					selected = append(selected, value)
				}
			}
			state[field.Name] = selected
		case model.FieldTypeCheckbox:
			state[field.Name] = present && isTruthy(first(raw))
		default:
			state[field.Name] = field.ZeroValue()
		}
	}

	return state
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func decodeNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
