// Package gemini implements classify.Generator on top of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	genai "google.golang.org/genai"

	"github.com/promptform/promptform/pkg/classify"
)

// ErrEmptyReply reports a response with no usable candidate text.
var ErrEmptyReply = errors.New("gemini: empty reply from model")

const (
	defaultModel = "gemini-2.0-flash"

	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
	retryMaxDelay = 2 * time.Second
)

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model identifier.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// Client is a thin classify.Generator over the official genai client. It
// requests application/json responses and retries transient failures a
// bounded number of times inside the caller's deadline.
type Client struct {
	cli   *genai.Client
	model string
}

var _ classify.Generator = (*Client)(nil)

// New constructs a Client. The API key may be empty when the environment
// provides credentials the genai client can discover on its own.
func New(ctx context.Context, apiKey string, options ...Option) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	c := &Client{cli: cli, model: defaultModel}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Generate sends the prompt and returns the raw reply text. Callers extract
// and validate any JSON themselves.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return retry.DoWithData(
		func() (string, error) {
			resp, err := c.cli.Models.GenerateContent(ctx, c.model,
				genai.Text(prompt),
				&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
			)
			if err != nil {
				return "", fmt.Errorf("gemini: generate content: %w", err)
			}
			if len(resp.Candidates) == 0 ||
				resp.Candidates[0].Content == nil ||
				len(resp.Candidates[0].Content.Parts) == 0 {
				return "", ErrEmptyReply
			}
			text := resp.Candidates[0].Content.Parts[0].Text
			if text == "" {
				return "", ErrEmptyReply
			}
			return text, nil
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.MaxDelay(retryMaxDelay),
		retry.LastErrorOnly(true),
	)
}
