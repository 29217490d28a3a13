package classify

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/promptform/promptform/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// sanitizeSpec strips markup from every display string of an externally
// generated spec. Identifiers and types are left alone; they are already
// schema-constrained.
func sanitizeSpec(spec model.FormSpec) model.FormSpec {
	policy := textSanitizer()
	clean := func(s string) string {
		return strings.TrimSpace(policy.Sanitize(s))
	}

	out := spec.Clone()
	out.Title = clean(out.Title)
	out.Description = clean(out.Description)
	for i := range out.Fields {
		out.Fields[i].Label = clean(out.Fields[i].Label)
		out.Fields[i].Placeholder = clean(out.Fields[i].Placeholder)
		for j, opt := range out.Fields[i].Options {
			out.Fields[i].Options[j] = clean(opt)
		}
	}
	return out
}
