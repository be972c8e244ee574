package association

import (
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// View is the presentation model renderers draw from.
type View struct {
	Field        model.Field
	QueryTerm    string
	Counter      Counter
	Catalog      []CatalogEntry
	Selection    []SelectionEntry
	LimitReached bool
}

// Counter backs the "showing N of M results" line.
type Counter struct {
	Visible int
	Total   int
}

// CatalogEntry is a browsable option plus its add state.
type CatalogEntry struct {
	Option   model.Option
	Selected bool
	// AddOutcome is what adding the option would return right now.
	AddOutcome Outcome
}

// CanAdd reports whether the add action should be enabled.
func (e CatalogEntry) CanAdd() bool {
	return e.AddOutcome == Accepted
}

// SelectionEntry is a selected option with its position, used by the remove
// action and the drag handle.
type SelectionEntry struct {
	Option model.Option
	Index  int
}

// BuildView derives the presentation model from a snapshot. A value that is
// not a selection renders as an empty selection.
func BuildView(snap fields.Snapshot) View {
	selection, err := model.SelectionFrom(snap.Value)
	if err != nil {
		selection = model.Selection{}
	}

	view := View{
		Field:     snap.Field,
		QueryTerm: snap.QueryTerm,
		Counter: Counter{
			Visible: len(snap.Options),
			Total:   snap.TotalOptionsCount,
		},
		Catalog:      make([]CatalogEntry, 0, len(snap.Options)),
		Selection:    make([]SelectionEntry, 0, len(selection)),
		LimitReached: snap.Field.Bounded() && len(selection) >= snap.Field.MaxSelectable,
	}

	for _, option := range snap.Options {
		view.Catalog = append(view.Catalog, CatalogEntry{
			Option:     option,
			Selected:   option.Selected || selection.Contains(option.Key()),
			AddOutcome: CanAdd(snap.Field, selection, option),
		})
	}
	for idx, option := range selection {
		view.Selection = append(view.Selection, SelectionEntry{Option: option, Index: idx})
	}
	return view
}
