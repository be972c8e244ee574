package association

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// Control binds the selection transforms to a data source. It keeps no state:
// every call reads a fresh snapshot and reports accepted changes through
// OnChange(field.Key, newSelection).
type Control struct {
	source fields.DataSource
}

// New returns a control over source.
func New(source fields.DataSource) (*Control, error) {
	if source == nil {
		return nil, fmt.Errorf("association: data source is required")
	}
	return &Control{source: source}, nil
}

// FromProps builds a control from renderer props.
func FromProps(props fields.Props) *Control {
	return &Control{source: props.Source()}
}

// Add appends option to the current selection.
func (c *Control) Add(option model.Option) (Outcome, error) {
	field, selection, err := c.current()
	if err != nil {
		return Unknown, err
	}
	next, outcome := Append(field, selection, option)
	c.emit(field, next, outcome)
	return outcome, nil
}

// Remove drops the first selected entry matching option.
func (c *Control) Remove(option model.Option) (Outcome, error) {
	field, selection, err := c.current()
	if err != nil {
		return Unknown, err
	}
	next, outcome := Remove(selection, option)
	c.emit(field, next, outcome)
	return outcome, nil
}

// RemoveAt drops the selected entry at index.
func (c *Control) RemoveAt(index int) (Outcome, error) {
	field, selection, err := c.current()
	if err != nil {
		return Unknown, err
	}
	next, outcome := RemoveAt(selection, index)
	c.emit(field, next, outcome)
	return outcome, nil
}

// SetQueryTerm forwards term to the host. The control does no filtering.
func (c *Control) SetQueryTerm(term string) {
	c.source.OnQueryTermChange(term)
}

// Snapshot exposes the source snapshot the control operates on.
func (c *Control) Snapshot() fields.Snapshot {
	return c.source.Snapshot()
}

func (c *Control) current() (model.Field, model.Selection, error) {
	snap := c.source.Snapshot()
	selection, err := model.SelectionFrom(snap.Value)
	if err != nil {
		return snap.Field, nil, fmt.Errorf("association: field %q: %w", snap.Field.Key, err)
	}
	return snap.Field, selection, nil
}

func (c *Control) emit(field model.Field, next model.Selection, outcome Outcome) {
	if outcome != Accepted {
		return
	}
	c.source.OnChange(field.Key, next)
}

// ActionKind names an interaction emitted by rendered markup.
type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionRemove ActionKind = "remove"
	ActionQuery  ActionKind = "query"
)

// Action is a user interaction captured from a rendered control. Add actions
// carry the option key, remove actions the option key or the selection
// index, and query actions the new search term.
type Action struct {
	Kind      ActionKind `json:"action"`
	OptionKey string     `json:"option,omitempty"`
	Index     *int       `json:"index,omitempty"`
	Term      string     `json:"term,omitempty"`
}

// Dispatch applies an action. Add resolves OptionKey against the options in
// the current snapshot. Remove drops the first selected entry with OptionKey
// when it is set, otherwise the entry at Index. Query actions always report
// Accepted.
func (c *Control) Dispatch(action Action) (Outcome, error) {
	switch ActionKind(strings.ToLower(strings.TrimSpace(string(action.Kind)))) {
	case ActionAdd:
		option, ok := findOption(c.source.Snapshot().Options, action.OptionKey)
		if !ok {
			return Unknown, fmt.Errorf("%w: %q", ErrUnknownOption, action.OptionKey)
		}
		return c.Add(option)
	case ActionRemove:
		if key := strings.TrimSpace(action.OptionKey); key != "" {
			return c.removeKey(key)
		}
		if action.Index == nil {
			return Unknown, ErrNoTarget
		}
		return c.RemoveAt(*action.Index)
	case ActionQuery:
		c.SetQueryTerm(action.Term)
		return Accepted, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)
	}
}

func (c *Control) removeKey(key string) (Outcome, error) {
	field, selection, err := c.current()
	if err != nil {
		return Unknown, err
	}
	next, outcome := RemoveAt(selection, selection.Index(key))
	c.emit(field, next, outcome)
	return outcome, nil
}

func findOption(options []model.Option, key string) (model.Option, bool) {
	key = strings.TrimSpace(key)
	for _, option := range options {
		if option.Key() == key {
			return option, true
		}
	}
	return model.Option{}, false
}
