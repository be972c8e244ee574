// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// Post builds a post option with a predictable title and edit link.
func Post(id string) model.Option {
	return model.Option{
		ID:           id,
		Type:         "post",
		Subtype:      "post",
		Title:        "Post " + id,
		ThumbnailURL: fmt.Sprintf("https://example.com/thumbs/%s.png", id),
		EditURL:      fmt.Sprintf("https://example.com/wp-admin/post.php?post=%s&action=edit", id),
	}
}

// Posts returns posts with ids "1".."n".
func Posts(n int) []model.Option {
	out := make([]model.Option, n)
	for i := range out {
		out[i] = Post(fmt.Sprint(i + 1))
	}
	return out
}

// AssociationField returns an association descriptor with the given bounds.
func AssociationField(max int, duplicates bool) model.Field {
	return model.Field{
		Key:               "related_posts",
		Type:              model.FieldTypeAssociation,
		Label:             "Related posts",
		MaxSelectable:     max,
		DuplicatesAllowed: duplicates,
	}
}

// RadioField returns a radio descriptor with choices "x" and "y".
func RadioField() model.Field {
	return model.Field{
		Key:   "layout",
		Type:  model.FieldTypeRadio,
		Label: "Layout",
		Choices: []model.Choice{
			{Value: "x", Label: "X"},
			{Value: "y", Label: "Y"},
		},
	}
}

// Change is a recorded OnChange call.
type Change struct {
	Key   string
	Value any
}

// Source is an in-memory fields.DataSource that applies every change to its
// snapshot, mimicking a host that re-renders with fresh props.
type Source struct {
	mu      sync.Mutex
	snap    fields.Snapshot
	changes []Change
	terms   []string
}

// NewSource seeds a source.
func NewSource(snap fields.Snapshot) *Source {
	return &Source{snap: snap}
}

// Snapshot implements fields.DataSource.
func (s *Source) Snapshot() fields.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// OnChange implements fields.DataSource.
func (s *Source) OnChange(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, Change{Key: key, Value: value})
	s.snap.Value = value
}

// OnQueryTermChange implements fields.DataSource.
func (s *Source) OnQueryTermChange(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = append(s.terms, term)
	s.snap.QueryTerm = term
}

// Changes returns the recorded changes.
func (s *Source) Changes() []Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Change(nil), s.changes...)
}

// Terms returns the recorded query terms.
func (s *Source) Terms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}
