package association

import "github.com/goliatone/go-formfields/pkg/model"

// Append returns selection with a snapshot of option appended, unless the
// field's duplicate or maximum rules block it. The duplicate rule is checked
// first. The input slice is never modified.
func Append(field model.Field, selection model.Selection, option model.Option) (model.Selection, Outcome) {
	if outcome := CanAdd(field, selection, option); outcome != Accepted {
		return selection, outcome
	}

	next := make(model.Selection, len(selection), len(selection)+1)
	copy(next, selection)
	snapshot := option.Clone()
	snapshot.Selected = false
	return append(next, snapshot), Accepted
}

// Remove drops the first entry whose key matches option and keeps the order of
// the rest.
func Remove(selection model.Selection, option model.Option) (model.Selection, Outcome) {
	idx := selection.Index(option.Key())
	if idx < 0 {
		return selection, NotSelected
	}
	return RemoveAt(selection, idx)
}

// RemoveAt drops the entry at index.
func RemoveAt(selection model.Selection, index int) (model.Selection, Outcome) {
	if index < 0 || index >= len(selection) {
		return selection, NotSelected
	}
	next := make(model.Selection, 0, len(selection)-1)
	next = append(next, selection[:index]...)
	next = append(next, selection[index+1:]...)
	return next, Accepted
}

// CanAdd reports the outcome Append would produce without building the new
// selection.
func CanAdd(field model.Field, selection model.Selection, option model.Option) Outcome {
	if !field.DuplicatesAllowed && selection.Contains(option.Key()) {
		return RejectedDuplicate
	}
	if field.Bounded() && len(selection) >= field.MaxSelectable {
		return RejectedMaxReached
	}
	return Accepted
}
