package association

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/testsupport"
)

func TestAppend(t *testing.T) {
	a, b, c := testsupport.Post("a"), testsupport.Post("b"), testsupport.Post("c")

	cases := []struct {
		name      string
		field     model.Field
		selection model.Selection
		option    model.Option
		want      []string
		outcome   Outcome
	}{
		{
			name:      "unbounded append",
			field:     testsupport.AssociationField(0, false),
			selection: model.Selection{a},
			option:    b,
			want:      []string{a.Key(), b.Key()},
			outcome:   Accepted,
		},
		{
			name:      "at capacity",
			field:     testsupport.AssociationField(2, false),
			selection: model.Selection{a, b},
			option:    c,
			want:      []string{a.Key(), b.Key()},
			outcome:   RejectedMaxReached,
		},
		{
			name:      "negative max is unbounded",
			field:     testsupport.AssociationField(-1, false),
			selection: model.Selection{a, b},
			option:    c,
			want:      []string{a.Key(), b.Key(), c.Key()},
			outcome:   Accepted,
		},
		{
			name:      "duplicate rejected",
			field:     testsupport.AssociationField(0, false),
			selection: model.Selection{a},
			option:    a,
			want:      []string{a.Key()},
			outcome:   RejectedDuplicate,
		},
		{
			name:      "duplicate allowed",
			field:     testsupport.AssociationField(0, true),
			selection: model.Selection{a},
			option:    a,
			want:      []string{a.Key(), a.Key()},
			outcome:   Accepted,
		},
		{
			name:      "duplicate checked before max",
			field:     testsupport.AssociationField(1, false),
			selection: model.Selection{a},
			option:    a,
			want:      []string{a.Key()},
			outcome:   RejectedDuplicate,
		},
		{
			name:      "empty selection",
			field:     testsupport.AssociationField(1, false),
			selection: nil,
			option:    a,
			want:      []string{a.Key()},
			outcome:   Accepted,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.selection.Keys()
			got, outcome := Append(tc.field, tc.selection, tc.option)
			if outcome != tc.outcome {
				t.Fatalf("expected outcome %s, got %s", tc.outcome, outcome)
			}
			if diff := cmp.Diff(tc.want, got.Keys()); diff != "" {
				t.Fatalf("selection mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(before, tc.selection.Keys()); diff != "" {
				t.Fatalf("input selection mutated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppendSnapshotsOption(t *testing.T) {
	option := testsupport.Post("1")
	option.Selected = true
	option.Meta = map[string]any{"status": "draft"}

	got, outcome := Append(testsupport.AssociationField(0, false), nil, option)
	if outcome != Accepted {
		t.Fatalf("expected accepted, got %s", outcome)
	}

	option.Title = "Renamed"
	option.Meta["status"] = "published"

	if got[0].Title != "Post 1" {
		t.Fatalf("stored title changed to %q", got[0].Title)
	}
	if got[0].Meta["status"] != "draft" {
		t.Fatalf("stored meta changed to %v", got[0].Meta["status"])
	}
	if got[0].Selected {
		t.Fatalf("stored entry should not carry the catalogue selected flag")
	}
}

func TestAppendDoesNotAliasInputBacking(t *testing.T) {
	a, b, c := testsupport.Post("a"), testsupport.Post("b"), testsupport.Post("c")
	backing := make(model.Selection, 1, 4)
	backing[0] = a

	first, _ := Append(testsupport.AssociationField(0, false), backing, b)
	second, _ := Append(testsupport.AssociationField(0, false), backing, c)

	if first[1].ID != "b" || second[1].ID != "c" {
		t.Fatalf("appends share backing storage: %v / %v", first.Keys(), second.Keys())
	}
}

func TestRemove(t *testing.T) {
	a, b, c := testsupport.Post("a"), testsupport.Post("b"), testsupport.Post("c")

	cases := []struct {
		name      string
		selection model.Selection
		option    model.Option
		want      []string
		outcome   Outcome
	}{
		{
			name:      "removes middle preserving order",
			selection: model.Selection{a, b, c},
			option:    b,
			want:      []string{a.Key(), c.Key()},
			outcome:   Accepted,
		},
		{
			name:      "removes only first duplicate",
			selection: model.Selection{a, b, a},
			option:    a,
			want:      []string{b.Key(), a.Key()},
			outcome:   Accepted,
		},
		{
			name:      "missing option is a no-op",
			selection: model.Selection{a, b},
			option:    c,
			want:      []string{a.Key(), b.Key()},
			outcome:   NotSelected,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, outcome := Remove(tc.selection, tc.option)
			if outcome != tc.outcome {
				t.Fatalf("expected outcome %s, got %s", tc.outcome, outcome)
			}
			if diff := cmp.Diff(tc.want, got.Keys()); diff != "" {
				t.Fatalf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRemoveAtBounds(t *testing.T) {
	selection := model.Selection{testsupport.Post("a")}
	for _, idx := range []int{-1, 1, 5} {
		if _, outcome := RemoveAt(selection, idx); outcome != NotSelected {
			t.Fatalf("index %d: expected not_selected, got %s", idx, outcome)
		}
	}
	got, outcome := RemoveAt(selection, 0)
	if outcome != Accepted || len(got) != 0 {
		t.Fatalf("expected empty selection, got %v (%s)", got.Keys(), outcome)
	}
	if len(selection) != 1 {
		t.Fatalf("input selection mutated")
	}
}

func TestOutcomeErr(t *testing.T) {
	cases := map[Outcome]error{
		Accepted:           nil,
		RejectedDuplicate:  ErrDuplicate,
		RejectedMaxReached: ErrMaxReached,
		NotSelected:        ErrNotSelected,
	}
	for outcome, want := range cases {
		if got := outcome.Err(); got != want {
			t.Fatalf("%s: expected %v, got %v", outcome, want, got)
		}
	}
	if !Accepted.OK() || RejectedDuplicate.OK() {
		t.Fatalf("OK should only hold for accepted")
	}
}
