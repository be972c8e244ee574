package catalog

import (
	"sync"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// Change records a value reported through OnChange.
type Change struct {
	Key   string
	Value any
}

// ChangeListener observes accepted changes.
type ChangeListener func(Change)

// Source is a fields.DataSource over a catalogue. It stores the field value
// and query term, and computes snapshot options by searching the catalogue
// and marking the selected entries.
type Source struct {
	mu        sync.RWMutex
	field     model.Field
	catalog   *Catalog
	value     any
	term      string
	limit     int
	changes   []Change
	listeners []ChangeListener
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithLimit caps the number of options exposed per snapshot.
func WithLimit(limit int) SourceOption {
	return func(s *Source) {
		s.limit = limit
	}
}

// WithQueryTerm seeds the initial query term.
func WithQueryTerm(term string) SourceOption {
	return func(s *Source) {
		s.term = term
	}
}

// WithChangeListener registers a listener for every change.
func WithChangeListener(fn ChangeListener) SourceOption {
	return func(s *Source) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// NewSource builds a source for field. A nil catalogue falls back to the
// field's own options.
func NewSource(field model.Field, catalog *Catalog, value any, opts ...SourceOption) *Source {
	if catalog == nil {
		catalog = New(field.Options)
	}
	s := &Source{
		field:   field,
		catalog: catalog,
		value:   value,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Snapshot implements fields.DataSource.
func (s *Source) Snapshot() fields.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := fields.Snapshot{
		Field:     s.field,
		Value:     s.value,
		QueryTerm: s.term,
	}
	if s.field.Type != model.FieldTypeAssociation {
		return snap
	}
	selection, err := model.SelectionFrom(s.value)
	if err != nil {
		selection = nil
	}
	snap.Options = model.MarkSelected(s.catalog.Search(s.term, s.limit), selection)
	snap.TotalOptionsCount = s.catalog.Len()
	return snap
}

// OnChange implements fields.DataSource. Changes addressed to another field
// key are recorded but not applied.
func (s *Source) OnChange(key string, value any) {
	s.mu.Lock()
	change := Change{Key: key, Value: value}
	s.changes = append(s.changes, change)
	if key == s.field.Key {
		s.value = value
	}
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}

// OnQueryTermChange implements fields.DataSource.
func (s *Source) OnQueryTermChange(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = term
}

// Value returns the current field value.
func (s *Source) Value() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Changes returns every recorded change in order.
func (s *Source) Changes() []Change {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Change(nil), s.changes...)
}

var _ fields.DataSource = (*Source)(nil)
