// Package session tracks the lifecycle of one rendered form: its spec, the
// values entered so far, and whether it has been submitted. Values live in
// slots keyed by the spec fingerprint, so two forms that happen to share a
// field name never bleed into each other.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/promptform/promptform/pkg/model"
)

// Status is the lifecycle phase of a session.
type Status string

const (
	StatusOpen      Status = "open"
	StatusSubmitted Status = "submitted"
)

// Session holds one form's spec and its slot-keyed working state. All
// methods are safe for concurrent use.
type Session struct {
	id      string
	spec    model.FormSpec
	created time.Time

	mu        sync.RWMutex
	slots     map[string]any
	status    Status
	submitted *model.SubmissionRecord
}

// New seeds every field slot with its zero value so rendering a fresh
// session is deterministic.
func New(id string, spec model.FormSpec) (*Session, error) {
	if err := spec.Check(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		id:      id,
		spec:    spec.Clone(),
		created: time.Now().UTC(),
		slots:   make(map[string]any, len(spec.Fields)),
		status:  StatusOpen,
	}
	fp := s.spec.Fingerprint()
	for i, field := range s.spec.Fields {
		s.slots[model.SlotID(fp, i, field.Name)] = field.ZeroValue()
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Spec returns a copy of the form spec so callers cannot mutate the one the
// session renders from.
func (s *Session) Spec() model.FormSpec {
	return s.spec.Clone()
}

// CreatedAt returns the session creation time in UTC.
func (s *Session) CreatedAt() time.Time { return s.created }

// Status reports the current lifecycle phase.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// State projects the slots back into a field-name keyed FormState for
// renderers and presenters.
func (s *Session) State() model.FormState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() model.FormState {
	fp := s.spec.Fingerprint()
	state := make(model.FormState, len(s.spec.Fields))
	for i, field := range s.spec.Fields {
		state[field.Name] = s.slots[model.SlotID(fp, i, field.Name)]
	}
	return state.Clone()
}

// SetValues merges the given values into the session slots. Unknown field
// names are dropped and missing fields keep their current value. Submitted
// sessions reject writes until Reset.
func (s *Session) SetValues(values model.FormState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitted {
		return fmt.Errorf("session: %s already submitted", s.id)
	}

	fp := s.spec.Fingerprint()
	incoming := values.Clone()
	for i, field := range s.spec.Fields {
		value, ok := incoming[field.Name]
		if !ok {
			continue
		}
		s.slots[model.SlotID(fp, i, field.Name)] = value
	}
	return nil
}

// Submit freezes the current state into an immutable SubmissionRecord and
// marks the session submitted. Submitting twice returns the first record.
func (s *Session) Submit(at time.Time) (model.SubmissionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitted {
		return *s.submitted, nil
	}

	record := model.NewSubmissionRecord(s.spec, s.stateLocked(), at.UTC())
	s.submitted = &record
	s.status = StatusSubmitted
	return record, nil
}

// Submission returns the frozen record, if the session has one.
func (s *Session) Submission() (model.SubmissionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.submitted == nil {
		return model.SubmissionRecord{}, false
	}
	return *s.submitted, true
}

// Reset clears every slot back to its zero value and reopens the session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp := s.spec.Fingerprint()
	for i, field := range s.spec.Fields {
		s.slots[model.SlotID(fp, i, field.Name)] = field.ZeroValue()
	}
	s.submitted = nil
	s.status = StatusOpen
}
