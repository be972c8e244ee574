// Package choice adapts radio style fields: a flat list of choices plus one
// selected value. Selecting a choice always reports the value, including
// when it is already selected.
package choice

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// ErrUnknownChoice is returned when a value is not one of the field's choices.
var ErrUnknownChoice = errors.New("choice: unknown choice")

// Adapter maps a choice selection onto the source's change callback.
type Adapter struct {
	source fields.DataSource
}

// New returns an adapter over source.
func New(source fields.DataSource) (*Adapter, error) {
	if source == nil {
		return nil, fmt.Errorf("choice: data source is required")
	}
	return &Adapter{source: source}, nil
}

// FromProps builds an adapter from renderer props.
func FromProps(props fields.Props) *Adapter {
	return &Adapter{source: props.Source()}
}

// Select emits OnChange(field.Key, value) when value is a known choice.
func (a *Adapter) Select(value string) error {
	field := a.source.Snapshot().Field
	if field.ChoiceIndex(value) < 0 {
		return fmt.Errorf("%w: %q for field %q", ErrUnknownChoice, value, field.Key)
	}
	a.source.OnChange(field.Key, value)
	return nil
}

// SelectIndex selects the choice at index.
func (a *Adapter) SelectIndex(index int) error {
	field := a.source.Snapshot().Field
	if index < 0 || index >= len(field.Choices) {
		return fmt.Errorf("%w: index %d for field %q", ErrUnknownChoice, index, field.Key)
	}
	return a.Select(field.Choices[index].Value)
}

// Selected returns the current value, empty when unset or not a string.
func (a *Adapter) Selected() string {
	value, err := model.ChoiceFrom(a.source.Snapshot().Value)
	if err != nil {
		return ""
	}
	return value
}
