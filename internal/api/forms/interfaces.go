package forms

import (
	"context"

	"github.com/promptform/promptform/pkg/model"
	"github.com/promptform/promptform/pkg/session"
)

// Classifier turns a prompt into a form spec.
type Classifier interface {
	Classify(ctx context.Context, prompt string, useExternal bool) (model.FormSpec, error)
}

// SessionStore manages the lifetime of form sessions.
type SessionStore interface {
	Create(spec model.FormSpec) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Delete(id string)
}
