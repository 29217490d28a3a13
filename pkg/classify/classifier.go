// Package classify maps free-text form descriptions to FormSpecs. The path
// is keyword rules first, then an optional external generator, then a local
// synthesizer that always succeeds. Generator failures of any kind degrade
// silently to the synthesizer; the caller never sees them as hard errors.
package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/promptform/promptform/pkg/model"
	"github.com/promptform/promptform/pkg/validation"
)

// ErrEmptyPrompt is returned when the prompt is blank. It is the only
// classification error a user is meant to see.
var ErrEmptyPrompt = errors.New("classify: prompt is empty")

// Generator produces free-form text expected to contain a FormSpec JSON
// object. Implementations live outside the core (see the gemini
// subpackage); failures are treated uniformly as "generator unavailable".
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const defaultGeneratorTimeout = 15 * time.Second

// generatorInstruction frames the user prompt for the external model. The
// reply only needs to contain a JSON object somewhere; extraction digs it
// out.
const generatorInstruction = `You design web forms. Reply with a single JSON object describing the form for the request below.
Shape: {"title": string, "description": string, "fields": [{"name": string, "label": string, "type": one of text|email|tel|number|textarea|select|multiselect|date|checkbox, "required": bool, "placeholder": string, "options": [string]}]}.
Field names must be unique snake_case identifiers. Provide "options" only for select and multiselect fields.

Request: `

// Option configures a Classifier.
type Option func(*Classifier)

// WithGenerator attaches an external generator consulted when no keyword
// group matches and the caller opts in.
func WithGenerator(gen Generator) Option {
	return func(c *Classifier) {
		c.generator = gen
	}
}

// WithTimeout bounds a single generator delegation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Classifier) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger routes fallback diagnostics somewhere visible. Defaults to a
// nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRules replaces the embedded keyword tables.
func WithRules(rules RuleSet) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithTemplates replaces the embedded form templates.
func WithTemplates(templates map[string]model.FormSpec) Option {
	return func(c *Classifier) {
		c.templates = templates
	}
}

// Classifier turns prompts into FormSpecs. It is safe for concurrent use;
// all mutable state is per-call.
type Classifier struct {
	rules     RuleSet
	templates map[string]model.FormSpec
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
}

// New builds a Classifier from the embedded configuration plus any options.
func New(options ...Option) (*Classifier, error) {
	rules, err := DefaultRuleSet()
	if err != nil {
		return nil, err
	}
	templates, err := DefaultTemplates()
	if err != nil {
		return nil, err
	}

	c := &Classifier{
		rules:     rules,
		templates: templates,
		timeout:   defaultGeneratorTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if err := checkConfig(c.rules, c.templates); err != nil {
		return nil, err
	}
	return c, nil
}

// Classify resolves a prompt to a FormSpec. The returned spec is always a
// fresh value the caller may keep without aliasing classifier state.
func (c *Classifier) Classify(ctx context.Context, prompt string, useExternal bool) (model.FormSpec, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return model.FormSpec{}, ErrEmptyPrompt
	}

	lower := strings.ToLower(trimmed)
	for _, group := range c.rules.Groups {
		for _, keyword := range group.Keywords {
			if strings.Contains(lower, keyword) {
				return c.templates[group.Template].Clone(), nil
			}
		}
	}

	if useExternal && c.generator != nil {
		spec, err := c.delegate(ctx, trimmed)
		if err == nil {
			return spec, nil
		}
		c.logger.Debug("external generator unavailable, using synthesizer",
			zap.Error(err),
		)
	}

	return c.synthesize(lower), nil
}

func (c *Classifier) delegate(ctx context.Context, prompt string) (model.FormSpec, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.generator.Generate(ctx, generatorInstruction+prompt)
	if err != nil {
		return model.FormSpec{}, fmt.Errorf("classify: generate: %w", err)
	}

	raw, ok := FirstJSONObject(reply)
	if !ok {
		return model.FormSpec{}, errors.New("classify: no JSON object in generator reply")
	}

	spec, err := validation.Spec(raw)
	if err != nil {
		return model.FormSpec{}, fmt.Errorf("classify: generated spec rejected: %w", err)
	}

	spec = sanitizeSpec(spec)
	if err := spec.Check(); err != nil {
		return model.FormSpec{}, fmt.Errorf("classify: generated spec unusable after sanitizing: %w", err)
	}
	return spec, nil
}
