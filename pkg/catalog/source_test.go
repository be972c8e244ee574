package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/association"
	"github.com/goliatone/go-formfields/pkg/model"
)

func TestSourceSnapshotMarksSelection(t *testing.T) {
	field := model.Field{Key: "related", Type: model.FieldTypeAssociation}
	c := New(sample())
	selected, _ := c.Lookup("post:3")
	source := NewSource(field, c, model.Selection{selected}, WithQueryTerm("post"))

	snap := source.Snapshot()
	if snap.TotalOptionsCount != 4 {
		t.Fatalf("expected total 4, got %d", snap.TotalOptionsCount)
	}
	if diff := cmp.Diff([]string{"1", "3"}, ids(snap.Options)); diff != "" {
		t.Fatalf("options (-want +got):\n%s", diff)
	}
	if snap.Options[0].Selected || !snap.Options[1].Selected {
		t.Fatalf("selected flags wrong: %+v", snap.Options)
	}
}

func TestSourceDrivesControl(t *testing.T) {
	field := model.Field{Key: "related", Type: model.FieldTypeAssociation, MaxSelectable: 2}
	var seen []Change
	source := NewSource(field, New(sample()), nil, WithLimit(3), WithChangeListener(func(c Change) {
		seen = append(seen, c)
	}))
	control, err := association.New(source)
	if err != nil {
		t.Fatalf("control: %v", err)
	}

	control.SetQueryTerm("post")
	snap := source.Snapshot()
	if len(snap.Options) != 2 {
		t.Fatalf("expected 2 post options, got %d", len(snap.Options))
	}
	for _, option := range snap.Options {
		if outcome, err := control.Add(option); err != nil || outcome != association.Accepted {
			t.Fatalf("add %s: %s (%v)", option.Key(), outcome, err)
		}
	}
	if outcome, _ := control.Add(sample()[1]); outcome != association.RejectedMaxReached {
		t.Fatalf("expected max reached, got %s", outcome)
	}

	selection, err := model.SelectionFrom(source.Value())
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if diff := cmp.Diff([]string{"post:1", "post:3"}, selection.Keys()); diff != "" {
		t.Fatalf("selection (-want +got):\n%s", diff)
	}
	if len(seen) != 2 || len(source.Changes()) != 2 {
		t.Fatalf("expected two changes, got listener=%d log=%d", len(seen), len(source.Changes()))
	}
	for _, option := range source.Snapshot().Options {
		if !option.Selected {
			t.Fatalf("option %s should be marked selected", option.Key())
		}
	}
}

func TestSourceIgnoresForeignKeys(t *testing.T) {
	field := model.Field{Key: "layout", Type: model.FieldTypeRadio}
	source := NewSource(field, nil, "x")
	source.OnChange("other", "y")
	if source.Value() != "x" {
		t.Fatalf("foreign change applied")
	}
	if len(source.Changes()) != 1 {
		t.Fatalf("foreign change not recorded")
	}
	if snap := source.Snapshot(); snap.Options != nil || snap.TotalOptionsCount != 0 {
		t.Fatalf("radio snapshot should not carry catalogue options")
	}
}
