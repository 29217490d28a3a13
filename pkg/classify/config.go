package classify

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/promptform/promptform/pkg/model"
)

//go:embed rules.yaml
var embeddedRules []byte

//go:embed templates.yaml
var embeddedTemplates []byte

// RuleGroup binds a set of keywords to a named template. Groups are tried
// in order; the first keyword hit wins.
type RuleGroup struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Template string   `yaml:"template"`
}

// SynthesizerRules are the keyword and title tables driving the local
// fallback synthesizer.
type SynthesizerRules struct {
	EmailKeywords   []string `yaml:"email_keywords"`
	PhoneKeywords   []string `yaml:"phone_keywords"`
	MessageKeywords []string `yaml:"message_keywords"`
	TitleStopwords  []string `yaml:"title_stopwords"`
}

// RuleSet is the full classifier configuration. It is data, not logic:
// swapping it changes behaviour without touching code.
type RuleSet struct {
	Groups      []RuleGroup      `yaml:"groups"`
	Synthesizer SynthesizerRules `yaml:"synthesizer"`
}

// DefaultRuleSet parses the embedded rule tables.
func DefaultRuleSet() (RuleSet, error) {
	var rules RuleSet
	if err := yaml.Unmarshal(embeddedRules, &rules); err != nil {
		return RuleSet{}, fmt.Errorf("classify: parse embedded rules: %w", err)
	}
	return rules, nil
}

// DefaultTemplates parses the embedded form templates.
func DefaultTemplates() (map[string]model.FormSpec, error) {
	templates := make(map[string]model.FormSpec)
	if err := yaml.Unmarshal(embeddedTemplates, &templates); err != nil {
		return nil, fmt.Errorf("classify: parse embedded templates: %w", err)
	}
	return templates, nil
}

func checkConfig(rules RuleSet, templates map[string]model.FormSpec) error {
	for _, group := range rules.Groups {
		if group.Name == "" {
			return fmt.Errorf("classify: rule group without a name")
		}
		if len(group.Keywords) == 0 {
			return fmt.Errorf("classify: rule group %q has no keywords", group.Name)
		}
		if _, ok := templates[group.Template]; !ok {
			return fmt.Errorf("classify: rule group %q references unknown template %q", group.Name, group.Template)
		}
	}
	for name, spec := range templates {
		if err := spec.Check(); err != nil {
			return fmt.Errorf("classify: template %q: %w", name, err)
		}
	}
	return nil
}
