package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/promptform/promptform/pkg/model"
)

func contactSpec() model.FormSpec {
	return model.FormSpec{
		Title: "Contact Registration Form",
		Fields: []model.FieldSpec{
			{Name: "name", Label: "Full Name", Type: model.FieldTypeText, Required: true},
			{Name: "email", Label: "Email Address", Type: model.FieldTypeEmail, Required: true},
			{Name: "topics", Label: "Topics", Type: model.FieldTypeMultiselect, Options: []string{"Sales", "Support"}},
			{Name: "subscribed", Label: "Subscribe", Type: model.FieldTypeCheckbox},
		},
	}
}

func TestNewSeedsZeroValues(t *testing.T) {
	sess, err := New("s1", contactSpec())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	want := model.FormState{
		"name":       "",
		"email":      "",
		"topics":     []string{},
		"subscribed": false,
	}
	if diff := cmp.Diff(want, sess.State()); diff != "" {
		t.Fatalf("fresh state mismatch (-want +got):\n%s", diff)
	}
	if sess.Status() != StatusOpen {
		t.Fatalf("status = %q, want %q", sess.Status(), StatusOpen)
	}
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	if _, err := New("s1", model.FormSpec{Title: "x"}); err == nil {
		t.Fatalf("expected error for spec with no fields")
	}
}

func TestSetValuesMergesAndDropsStrays(t *testing.T) {
	sess, _ := New("s1", contactSpec())

	if err := sess.SetValues(model.FormState{
		"name":   "Ada",
		"topics": []string{"Support"},
		"stray":  "ignored",
	}); err != nil {
		t.Fatalf("set values: %v", err)
	}

	state := sess.State()
	if state["name"] != "Ada" {
		t.Errorf("name = %v", state["name"])
	}
	if state["email"] != "" {
		t.Errorf("untouched field changed: %v", state["email"])
	}
	if _, ok := state["stray"]; ok {
		t.Errorf("stray key survived the merge")
	}
	if diff := cmp.Diff([]string{"Support"}, state["topics"]); diff != "" {
		t.Errorf("topics mismatch (-want +got):\n%s", diff)
	}
}

func TestStateIsACopy(t *testing.T) {
	sess, _ := New("s1", contactSpec())
	_ = sess.SetValues(model.FormState{"topics": []string{"Sales"}})

	state := sess.State()
	state["name"] = "tampered"
	state["topics"].([]string)[0] = "tampered"

	fresh := sess.State()
	if fresh["name"] != "" {
		t.Errorf("map write leaked into session")
	}
	if fresh["topics"].([]string)[0] != "Sales" {
		t.Errorf("slice write leaked into session")
	}
}

func TestSubmitFreezesRecord(t *testing.T) {
	sess, _ := New("s1", contactSpec())
	_ = sess.SetValues(model.FormState{"name": "Ada", "email": "ada@example.com"})

	at := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	record, err := sess.Submit(at)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sess.Status() != StatusSubmitted {
		t.Fatalf("status = %q after submit", sess.Status())
	}
	if !record.SubmittedAt.Equal(at) {
		t.Errorf("submitted at %v, want %v", record.SubmittedAt, at)
	}

	if err := sess.SetValues(model.FormState{"name": "Eve"}); err == nil {
		t.Fatalf("expected write to submitted session to fail")
	}
	if record.Values["name"] != "Ada" {
		t.Errorf("record mutated after submit: %v", record.Values["name"])
	}

	again, err := sess.Submit(at.Add(time.Hour))
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if !again.SubmittedAt.Equal(at) {
		t.Errorf("second submit minted a new record at %v", again.SubmittedAt)
	}
}

func TestResetReopensWithZeroValues(t *testing.T) {
	sess, _ := New("s1", contactSpec())
	_ = sess.SetValues(model.FormState{"name": "Ada"})
	_, _ = sess.Submit(time.Now())

	sess.Reset()

	if sess.Status() != StatusOpen {
		t.Fatalf("status = %q after reset", sess.Status())
	}
	if _, ok := sess.Submission(); ok {
		t.Fatalf("submission survived reset")
	}
	if sess.State()["name"] != "" {
		t.Fatalf("values survived reset")
	}
	if err := sess.SetValues(model.FormState{"name": "Eve"}); err != nil {
		t.Fatalf("write after reset: %v", err)
	}
}

func TestSlotsDoNotCollideAcrossSpecs(t *testing.T) {
	a, _ := New("a", contactSpec())

	other := contactSpec()
	other.Title = "Completely Different Form"
	b, _ := New("b", other)

	_ = a.SetValues(model.FormState{"name": "Ada"})
	if b.State()["name"] != "" {
		t.Fatalf("value crossed between sessions of different specs")
	}
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(time.Minute)

	sess, err := store.Create(contactSpec())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID() == "" {
		t.Fatalf("empty session id")
	}

	got, err := store.Get(sess.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != sess {
		t.Fatalf("get returned a different session")
	}

	store.Delete(sess.ID())
	if _, err := store.Get(sess.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
}

func TestStoreMintsDistinctIDs(t *testing.T) {
	store := NewStore(time.Minute)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		sess, err := store.Create(contactSpec())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[sess.ID()] {
			t.Fatalf("duplicate session id %q", sess.ID())
		}
		seen[sess.ID()] = true
	}
}
