package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// FormState holds the in-progress values for a form, keyed by field name.
// Value shapes follow the field type: string for text-likes, selects and
// dates, float64 for numbers, bool for checkboxes, []string for
// multiselects.
type FormState map[string]any

// Clone deep-copies the state so snapshots cannot be mutated through the
// live map.
func (s FormState) Clone() FormState {
	if s == nil {
		return nil
	}
	out := make(FormState, len(s))
	for name, value := range s {
		if list, ok := value.([]string); ok {
			out[name] = append([]string{}, list...)
			continue
		}
		out[name] = value
	}
	return out
}

// Seeded returns a state covering every field in spec: existing values are
// kept, missing ones take the field's zero value. Keys that do not belong
// to spec are dropped, preserving the invariant that every state key maps
// to exactly one FieldSpec.
func (s FormState) Seeded(spec FormSpec) FormState {
	out := make(FormState, len(spec.Fields))
	for _, field := range spec.Fields {
		if value, ok := s[field.Name]; ok {
			out[field.Name] = value
			continue
		}
		out[field.Name] = field.ZeroValue()
	}
	return out.Clone()
}

// SubmissionRecord is the immutable snapshot of a FormState taken at submit
// time, paired with the FormSpec that produced it. The spec is retained so
// presenters can resolve labels and types without re-deriving them.
type SubmissionRecord struct {
	Spec        FormSpec
	Values      FormState
	SubmittedAt time.Time
}

// NewSubmissionRecord snapshots state against spec. Both sides are copied;
// later edits to the live session do not leak into the record.
func NewSubmissionRecord(spec FormSpec, state FormState, at time.Time) SubmissionRecord {
	return SubmissionRecord{
		Spec:        spec.Clone(),
		Values:      state.Seeded(spec),
		SubmittedAt: at,
	}
}

// Fingerprint derives a short stable identifier from the spec's canonical
// JSON. Structurally different specs get different fingerprints, so state
// slots keyed by fingerprint never collide across forms.
func (s FormSpec) Fingerprint() string {
	payload, err := json.Marshal(s)
	if err != nil {
		// FormSpec contains only marshalable types; treat failure as a
		// programming error rather than propagating it through every caller.
		panic(fmt.Sprintf("model: marshal spec for fingerprint: %v", err))
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:8])
}

// SlotID is the persistent state-slot key for one field of one form. It
// folds in the form fingerprint, the field's position and its name, so
// reordering fields or swapping specs can never silently reuse a stale
// slot for the wrong field.
func SlotID(fingerprint string, index int, name string) string {
	return fmt.Sprintf("%s.%02d.%s", fingerprint, index, name)
}
