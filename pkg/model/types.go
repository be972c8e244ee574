package model

import "strings"

// FieldType tags the kind of widget a field renders as. Renderer registries
// are keyed by this value.
type FieldType string

const (
	FieldTypeAssociation FieldType = "association"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeRadioImage  FieldType = "radio_image"
)

// Valid reports whether the type is one of the built-in field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeAssociation, FieldTypeRadio, FieldTypeRadioImage:
		return true
	default:
		return false
	}
}

// ParseFieldType normalises a raw type name. Hyphenated spellings such as
// "radio-image" are accepted.
func ParseFieldType(raw string) FieldType {
	normalised := strings.ToLower(strings.TrimSpace(raw))
	normalised = strings.ReplaceAll(normalised, "-", "_")
	return FieldType(normalised)
}

// Field describes a single editable attribute: its label, constraints and
// the option catalogue it draws from.
type Field struct {
	Key         string    `json:"key" yaml:"key"`
	Type        FieldType `json:"type" yaml:"type"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText    string    `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	// MaxSelectable bounds association selections. Zero or negative means
	// unbounded.
	MaxSelectable     int               `json:"max,omitempty" yaml:"max,omitempty"`
	DuplicatesAllowed bool              `json:"duplicatesAllowed,omitempty" yaml:"duplicatesAllowed,omitempty"`
	Options           []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Choices           []Choice          `json:"choices,omitempty" yaml:"choices,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Bounded reports whether the field caps the selection length.
func (f Field) Bounded() bool {
	return f.MaxSelectable > 0
}

// Choice is a single entry of a radio style field.
type Choice struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	ImageURL string `json:"image,omitempty" yaml:"image,omitempty"`
}

// ChoiceIndex returns the index of the choice with the given value or -1.
func (f Field) ChoiceIndex(value string) int {
	for idx, choice := range f.Choices {
		if choice.Value == value {
			return idx
		}
	}
	return -1
}
