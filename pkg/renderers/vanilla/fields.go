package vanilla

import (
	"html"
	"strconv"
	"strings"

	"github.com/promptform/promptform/pkg/model"
)

// buildFieldMarkup emits the widget for one field, seeded from value. All
// text comes from user or classifier input, so every interpolation passes
// through html.EscapeString.
func buildFieldMarkup(field model.FieldSpec, value any) string {
	var builder strings.Builder
	builder.Grow(512)

	id := controlID(field.Name)

	builder.WriteString(`<div class="field" data-field="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`">` + "\n")

	if field.Type != model.FieldTypeCheckbox {
		builder.WriteString(`    <label for="`)
		builder.WriteString(id)
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(field.Label))
		if field.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	switch field.Type {
	case model.FieldTypeText, model.FieldTypeEmail, model.FieldTypeTel, model.FieldTypeDate:
		writeInput(&builder, field, id, string(field.Type), stringValue(value))
	case model.FieldTypeNumber:
		writeInput(&builder, field, id, "number", numberString(value))
	case model.FieldTypeTextarea:
		writeTextarea(&builder, field, id, stringValue(value))
	case model.FieldTypeSelect:
		writeSelect(&builder, field, id, stringValue(value))
	case model.FieldTypeMultiselect:
		writeMultiselect(&builder, field, id, sliceValue(value))
	case model.FieldTypeCheckbox:
		writeCheckbox(&builder, field, id, value == true)
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func writeInput(builder *strings.Builder, field model.FieldSpec, id, inputType, value string) {
	builder.WriteString(`    <input type="`)
	builder.WriteString(inputType)
	builder.WriteString(`" id="`)
	builder.WriteString(id)
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`"`)
	if field.Placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(field.Placeholder))
		builder.WriteString(`"`)
	}
	if value != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(value))
		builder.WriteString(`"`)
	}
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(">\n")
}

func writeTextarea(builder *strings.Builder, field model.FieldSpec, id, value string) {
	builder.WriteString(`    <textarea id="`)
	builder.WriteString(id)
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`"`)
	if field.Placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(field.Placeholder))
		builder.WriteString(`"`)
	}
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString("</textarea>\n")
}

func writeSelect(builder *strings.Builder, field model.FieldSpec, id, value string) {
	builder.WriteString(`    <select id="`)
	builder.WriteString(id)
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`"`)
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(">\n")

	builder.WriteString(`        <option value=""`)
	if value == "" {
		builder.WriteString(` selected`)
	}
	builder.WriteString(">Select...</option>\n")

	for _, option := range field.Options {
		builder.WriteString(`        <option value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if option == value {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString("</option>\n")
	}
	builder.WriteString("    </select>\n")
}

func writeMultiselect(builder *strings.Builder, field model.FieldSpec, id string, values []string) {
	selected := make(map[string]struct{}, len(values))
	for _, v := range values {
		selected[v] = struct{}{}
	}

	builder.WriteString(`    <fieldset id="`)
	builder.WriteString(id)
	builder.WriteString(`">` + "\n")
	for i, option := range field.Options {
		optionID := id + "-" + strconv.Itoa(i)
		builder.WriteString(`        <label for="`)
		builder.WriteString(optionID)
		builder.WriteString(`"><input type="checkbox" id="`)
		builder.WriteString(optionID)
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(field.Name))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if _, ok := selected[option]; ok {
			builder.WriteString(` checked`)
		}
		builder.WriteString(`> `)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString("</label>\n")
	}
	builder.WriteString("    </fieldset>\n")
}

func writeCheckbox(builder *strings.Builder, field model.FieldSpec, id string, checked bool) {
	builder.WriteString(`    <label for="`)
	builder.WriteString(id)
	builder.WriteString(`"><input type="checkbox" id="`)
	builder.WriteString(id)
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" value="true"`)
	if checked {
		builder.WriteString(` checked`)
	}
	builder.WriteString(`> `)
	builder.WriteString(html.EscapeString(field.Label))
	if field.Required {
		builder.WriteString(` *`)
	}
	builder.WriteString("</label>\n")
}

func controlID(name string) string {
	return "pf-" + html.EscapeString(name)
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func numberString(value any) string {
	switch n := value.(type) {
	case float64:
		if n == 0 {
			return ""
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	return ""
}

func sliceValue(value any) []string {
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
