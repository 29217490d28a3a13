// Package tui collects form values through terminal prompts. The actual
// prompting sits behind PromptDriver so flows can be scripted in tests.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/promptform/promptform/pkg/model"
)

// Collector walks a form field by field, seeding each prompt from prior
// state, and asks for a final confirmation before reporting submitted=true.
type Collector struct {
	driver        PromptDriver
	confirmSubmit bool
}

// New constructs a Collector with the survey driver by default.
func New(options ...Option) (*Collector, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	c := &Collector{
		driver:        driver,
		confirmSubmit: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return c, nil
}

// Collect prompts for every field in spec order. Required fields are marked
// in the prompt label but an empty answer is still accepted; the flow mirrors
// the HTML form, which marks but does not block. The returned bool reports
// whether the user confirmed submission.
func (c *Collector) Collect(ctx context.Context, spec model.FormSpec, prior model.FormState) (model.FormState, bool, error) {
	if err := spec.Check(); err != nil {
		return nil, false, fmt.Errorf("tui: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	if spec.Title != "" {
		if err := c.driver.Info(ctx, spec.Title); err != nil {
			return nil, false, err
		}
	}
	if spec.Description != "" {
		if err := c.driver.Info(ctx, spec.Description); err != nil {
			return nil, false, err
		}
	}

	state := prior.Seeded(spec)
	for _, field := range spec.Fields {
		value, err := c.promptField(ctx, field, state[field.Name])
		if err != nil {
			return nil, false, err
		}
		state[field.Name] = value
	}

	if !c.confirmSubmit {
		return state, true, nil
	}

	submitted, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: "Submit this form?",
		Default: true,
	})
	if err != nil {
		return nil, false, err
	}
	return state, submitted, nil
}

func (c *Collector) promptField(ctx context.Context, field model.FieldSpec, prior any) (any, error) {
	switch field.Type {
	case model.FieldTypeText, model.FieldTypeEmail, model.FieldTypeTel, model.FieldTypeDate:
		return c.promptText(ctx, field, prior)
	case model.FieldTypeNumber:
		return c.promptNumber(ctx, field, prior)
	case model.FieldTypeTextarea:
		return c.promptTextArea(ctx, field, prior)
	case model.FieldTypeSelect:
		return c.promptSelect(ctx, field, prior)
	case model.FieldTypeMultiselect:
		return c.promptMultiSelect(ctx, field, prior)
	case model.FieldTypeCheckbox:
		return c.promptCheckbox(ctx, field, prior)
	default:
		return nil, fmt.Errorf("tui: unsupported field type %q", field.Type)
	}
}

func (c *Collector) promptText(ctx context.Context, field model.FieldSpec, prior any) (any, error) {
	out, err := c.driver.Input(ctx, InputConfig{
		Message:     promptLabel(field),
		Default:     stringValue(prior),
		Help:        field.Placeholder,
		Placeholder: field.Placeholder,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collector) promptTextArea(ctx context.Context, field model.FieldSpec, prior any) (any, error) {
	out, err := c.driver.TextArea(ctx, TextAreaConfig{
		Message: promptLabel(field),
		Default: stringValue(prior),
		Help:    field.Placeholder,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collector) promptNumber(ctx context.Context, field model.FieldSpec, prior any) (any, error) {
	defaultStr := ""
	if f, ok := numberValue(prior); ok && f != 0 {
		defaultStr = strconv.FormatFloat(f, 'f', -1, 64)
	}

	for {
		out, err := c.driver.Input(ctx, InputConfig{
			Message:     promptLabel(field),
			Default:     defaultStr,
			Help:        field.Placeholder,
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return nil, err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return float64(0), nil
		}
		parsed, err := strconv.ParseFloat(out, 64)
		if err != nil {
			if err := c.driver.Info(ctx, fmt.Sprintf("%s must be a number", field.Label)); err != nil {
				return nil, err
			}
			continue
		}
		return parsed, nil
	}
}

func (c *Collector) promptSelect(ctx context.Context, field model.FieldSpec, prior any) (any, error) {
	defaultIdx := -1
	if s := stringValue(prior); s != "" {
		defaultIdx = indexOf(field.Options, s)
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      promptLabel(field),
		Options:      field.Options,
		DefaultIndex: defaultIdx,
		Help:         field.Placeholder,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", nil
	}
	return field.Options[idx], nil
}

func (c *Collector) promptMultiSelect(ctx context.Context, field model.FieldSpec, prior any) (any, error) {
	indices, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  promptLabel(field),
		Options:  field.Options,
		Defaults: indicesOf(field.Options, sliceValue(prior)),
		Help:     field.Placeholder,
	})
	if err != nil {
		return nil, err
	}

	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			selected = append(selected, field.Options[idx])
		}
	}
	return selected, nil
}

func (c *Collector) promptCheckbox(ctx context.Context, field model.FieldSpec, prior any) (any, error) {
	checked, _ := prior.(bool)
	out, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: promptLabel(field),
		Default: checked,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func promptLabel(field model.FieldSpec) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += " *"
	}
	return label
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func numberValue(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func sliceValue(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}
