package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/promptform/promptform/pkg/model"
	"github.com/promptform/promptform/pkg/validation"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newClassifier(t *testing.T, options ...Option) *Classifier {
	t.Helper()
	c, err := New(options...)
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}
	return c
}

func TestClassifyEmptyPrompt(t *testing.T) {
	c := newClassifier(t)
	for _, prompt := range []string{"", "   ", "\n\t"} {
		if _, err := c.Classify(context.Background(), prompt, false); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("prompt %q: got %v, want ErrEmptyPrompt", prompt, err)
		}
	}
}

func TestClassifyDoctorKeywords(t *testing.T) {
	c := newClassifier(t)
	want, _ := c.Classify(context.Background(), "doctor", false)

	prompts := []string{
		"Doctor conference registration form",
		"I need something for MEDICAL staff",
		"collect the license number of each attendee",
	}
	for _, prompt := range prompts {
		got, err := c.Classify(context.Background(), prompt, false)
		if err != nil {
			t.Fatalf("classify %q: %v", prompt, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("prompt %q did not map to the doctor template (-want +got):\n%s", prompt, diff)
		}
		if got.Title != "Doctors' Conference Registration" {
			t.Errorf("prompt %q: title %q", prompt, got.Title)
		}
	}
}

func TestClassifyFintechKeywords(t *testing.T) {
	c := newClassifier(t)
	prompts := []string{
		"Fintech conference with business pain points",
		"registration asking for a mobile number",
	}
	for _, prompt := range prompts {
		got, err := c.Classify(context.Background(), prompt, false)
		if err != nil {
			t.Fatalf("classify %q: %v", prompt, err)
		}
		if got.Title != "Fintech Conference Registration" {
			t.Errorf("prompt %q: got title %q, want fintech template", prompt, got.Title)
		}
	}
}

func TestClassifyFirstGroupWins(t *testing.T) {
	c := newClassifier(t)
	// "medical" (doctor group) and "business" (fintech group) both match;
	// the doctor group is declared first.
	got, err := c.Classify(context.Background(), "medical business conference", false)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Title != "Doctors' Conference Registration" {
		t.Fatalf("got %q, want the first declared group to win", got.Title)
	}
}

func TestClassifyReturnsFreshCopies(t *testing.T) {
	c := newClassifier(t)
	first, _ := c.Classify(context.Background(), "doctor", false)
	first.Fields[2].Options[0] = "mutated"
	second, _ := c.Classify(context.Background(), "doctor", false)
	if second.Fields[2].Options[0] == "mutated" {
		t.Fatalf("classifier handed out aliased template state")
	}
}

func TestSynthesizerContactScenario(t *testing.T) {
	c := newClassifier(t)
	got, err := c.Classify(context.Background(), "Create a contact form with name, email, and message", false)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	if !strings.HasSuffix(got.Title, "Registration Form") {
		t.Errorf("title %q does not end in %q", got.Title, "Registration Form")
	}

	type shape struct {
		Name     string
		Type     model.FieldType
		Required bool
	}
	var fields []shape
	for _, f := range got.Fields {
		fields = append(fields, shape{f.Name, f.Type, f.Required})
	}
	want := []shape{
		{"name", model.FieldTypeText, true},
		{"email", model.FieldTypeEmail, true},
		{"message", model.FieldTypeTextarea, false},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("synthesized fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizerAlwaysLeadsWithRequiredName(t *testing.T) {
	c := newClassifier(t)
	prompts := []string{
		"survey about favorite colors",
		"event signup sheet",
		"collect phone and feedback from attendees",
	}
	for _, prompt := range prompts {
		got, err := c.Classify(context.Background(), prompt, false)
		if err != nil {
			t.Fatalf("classify %q: %v", prompt, err)
		}
		if len(got.Fields) == 0 {
			t.Fatalf("prompt %q: no fields", prompt)
		}
		first := got.Fields[0]
		if first.Name != "name" || first.Type != model.FieldTypeText || !first.Required {
			t.Errorf("prompt %q: first field %+v, want required name text field", prompt, first)
		}
		if err := got.Check(); err != nil {
			t.Errorf("prompt %q: synthesized spec violates invariants: %v", prompt, err)
		}
	}
}

func TestTemplatesSatisfySchema(t *testing.T) {
	templates, err := DefaultTemplates()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	for name, spec := range templates {
		if err := spec.Check(); err != nil {
			t.Errorf("template %q: %v", name, err)
		}
	}
}

const generatedSpec = `Sure! Here is the form you asked for:
{"title": "Workshop Signup", "fields": [
  {"name": "name", "label": "Full Name", "type": "text", "required": true},
  {"name": "track", "label": "Track", "type": "select", "options": ["Go", "Rust"]}
]}
Let me know if you need changes.`

func TestClassifyUsesGeneratorWhenEnabled(t *testing.T) {
	gen := &stubGenerator{reply: generatedSpec}
	c := newClassifier(t, WithGenerator(gen))

	got, err := c.Classify(context.Background(), "workshop signup sheet", true)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls)
	}
	if got.Title != "Workshop Signup" || len(got.Fields) != 2 {
		t.Fatalf("generated spec not used: %+v", got)
	}
}

func TestClassifyGeneratorNotConsultedWhenDisabled(t *testing.T) {
	gen := &stubGenerator{reply: generatedSpec}
	c := newClassifier(t, WithGenerator(gen))

	if _, err := c.Classify(context.Background(), "workshop signup sheet", false); err != nil {
		t.Fatalf("classify: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator consulted despite useExternal=false")
	}
}

func TestClassifyGeneratorFailureMatchesLocalResult(t *testing.T) {
	prompt := "workshop signup sheet with email"

	cases := []struct {
		name string
		gen  *stubGenerator
	}{
		{name: "transport error", gen: &stubGenerator{err: errors.New("connection refused")}},
		{name: "no JSON in reply", gen: &stubGenerator{reply: "I cannot help with that."}},
		{name: "malformed JSON", gen: &stubGenerator{reply: `{"title": "x", "fields": [`}},
		{name: "schema violation", gen: &stubGenerator{reply: `{"title": "x", "fields": [{"name": "a", "label": "A", "type": "password"}]}`}},
	}

	local := newClassifier(t)
	want, err := local.Classify(context.Background(), prompt, false)
	if err != nil {
		t.Fatalf("local classify: %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClassifier(t, WithGenerator(tc.gen))
			got, err := c.Classify(context.Background(), prompt, true)
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("fallback result differs from useExternal=false (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifySanitizesGeneratedText(t *testing.T) {
	gen := &stubGenerator{reply: `{"title": "<script>alert(1)</script>Signup", "fields": [
	  {"name": "name", "label": "<b>Name</b>", "type": "text"}
	]}`}
	c := newClassifier(t, WithGenerator(gen))

	got, err := c.Classify(context.Background(), "plain signup sheet", true)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Title != "Signup" {
		t.Errorf("title not sanitized: %q", got.Title)
	}
	if got.Fields[0].Label != "Name" {
		t.Errorf("label not sanitized: %q", got.Fields[0].Label)
	}
}

func TestGeneratedSpecsPassSharedValidator(t *testing.T) {
	raw, ok := FirstJSONObject(generatedSpec)
	if !ok {
		t.Fatalf("no JSON object found in fixture")
	}
	if _, err := validation.Spec(raw); err != nil {
		t.Fatalf("fixture spec rejected: %v", err)
	}
}
