package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFingerprintStable(t *testing.T) {
	a := sampleSpec()
	b := sampleSpec()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("identical specs produced different fingerprints")
	}
}

func TestFingerprintDistinguishesStructure(t *testing.T) {
	base := sampleSpec()

	reordered := base.Clone()
	reordered.Fields[0], reordered.Fields[1] = reordered.Fields[1], reordered.Fields[0]
	if base.Fingerprint() == reordered.Fingerprint() {
		t.Errorf("field reordering did not change the fingerprint")
	}

	retyped := base.Clone()
	retyped.Fields[0].Type = FieldTypeTextarea
	if base.Fingerprint() == retyped.Fingerprint() {
		t.Errorf("type change did not change the fingerprint")
	}
}

func TestSlotIDIncludesPositionAndName(t *testing.T) {
	fp := sampleSpec().Fingerprint()
	if SlotID(fp, 0, "name") == SlotID(fp, 1, "name") {
		t.Errorf("slot ids for different positions collide")
	}
	if SlotID(fp, 0, "name") == SlotID(fp, 0, "email") {
		t.Errorf("slot ids for different names collide")
	}
}

func TestSubmissionRecordIsSnapshot(t *testing.T) {
	spec := sampleSpec()
	state := FormState{
		"name":    "Ada",
		"dietary": []string{"Vegan"},
	}

	record := NewSubmissionRecord(spec, state, time.Unix(1700000000, 0))

	state["name"] = "changed"
	state["dietary"].([]string)[0] = "changed"

	want := FormState{
		"name":           "Ada",
		"specialization": "",
		"dietary":        []string{"Vegan"},
	}
	if diff := cmp.Diff(want, record.Values); diff != "" {
		t.Fatalf("record mutated through live state (-want +got):\n%s", diff)
	}
}
