package model

import (
	"strings"

	"github.com/mohae/deepcopy"
)

// Option is a selectable catalogue entry. Selected is derived by the host from
// membership in the current selection and is never authoritative on its own.
type Option struct {
	ID           string         `json:"id" yaml:"id"`
	Type         string         `json:"type,omitempty" yaml:"type,omitempty"`
	Subtype      string         `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Title        string         `json:"title" yaml:"title"`
	ThumbnailURL string         `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	EditURL      string         `json:"editLink,omitempty" yaml:"editLink,omitempty"`
	Selected     bool           `json:"selected,omitempty" yaml:"-"`
	Meta         map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

var keyEscaper = strings.NewReplacer("%", "%25", ":", "%3A")

// Key returns the stable identity of the option: type, subtype (when set) and
// id joined by colons. Colons and percent signs inside a part are escaped, so
// distinct options never share a key. Two options with the same key are the
// same entity.
func (o Option) Key() string {
	typ := keyEscaper.Replace(strings.TrimSpace(o.Type))
	sub := keyEscaper.Replace(strings.TrimSpace(o.Subtype))
	id := keyEscaper.Replace(strings.TrimSpace(o.ID))
	switch {
	case sub != "":
		return typ + ":" + sub + ":" + id
	case typ != "":
		return typ + ":" + id
	default:
		return id
	}
}

// Clone returns a deep copy of the option, Meta included, so later mutation of
// the source catalogue cannot leak into a stored selection.
func (o Option) Clone() Option {
	clone := o
	if o.Meta != nil {
		clone.Meta, _ = deepcopy.Copy(o.Meta).(map[string]any)
	}
	return clone
}

// CloneOptions deep copies a slice of options.
func CloneOptions(src []Option) []Option {
	if src == nil {
		return nil
	}
	out := make([]Option, len(src))
	for idx, option := range src {
		out[idx] = option.Clone()
	}
	return out
}

// MarkSelected returns a copy of options with Selected set from membership in
// the selection.
func MarkSelected(options []Option, selection Selection) []Option {
	if options == nil {
		return nil
	}
	keys := selection.keySet()
	out := make([]Option, len(options))
	for idx, option := range options {
		_, option.Selected = keys[option.Key()]
		out[idx] = option
	}
	return out
}
