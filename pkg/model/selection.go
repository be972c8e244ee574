package model

import "fmt"

// Selection is the ordered list of chosen options for an association field.
// Duplicates are legal when the field allows them.
type Selection []Option

// Contains reports whether an option with the given key is selected.
func (s Selection) Contains(key string) bool {
	return s.Index(key) >= 0
}

// Index returns the position of the first option with the given key or -1.
func (s Selection) Index(key string) int {
	for idx, option := range s {
		if option.Key() == key {
			return idx
		}
	}
	return -1
}

// Count returns how many entries share the given key.
func (s Selection) Count(key string) int {
	count := 0
	for _, option := range s {
		if option.Key() == key {
			count++
		}
	}
	return count
}

// Keys lists option keys in selection order.
func (s Selection) Keys() []string {
	keys := make([]string, len(s))
	for idx, option := range s {
		keys[idx] = option.Key()
	}
	return keys
}

func (s Selection) keySet() map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for _, option := range s {
		set[option.Key()] = struct{}{}
	}
	return set
}

// SelectionFrom converts a snapshot value into a Selection. Nil yields an
// empty selection.
func SelectionFrom(value any) (Selection, error) {
	switch typed := value.(type) {
	case nil:
		return Selection{}, nil
	case Selection:
		return typed, nil
	case []Option:
		return Selection(typed), nil
	default:
		return nil, fmt.Errorf("model: value of type %T is not a selection", value)
	}
}

// ChoiceFrom converts a snapshot value into a single-choice value. Nil yields
// the empty (unset) value.
func ChoiceFrom(value any) (string, error) {
	switch typed := value.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case fmt.Stringer:
		return typed.String(), nil
	default:
		return "", fmt.Errorf("model: value of type %T is not a choice", value)
	}
}
