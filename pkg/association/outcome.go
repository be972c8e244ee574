package association

import "errors"

var (
	// ErrDuplicate reports an add rejected because the option is already
	// selected and the field disallows duplicates.
	ErrDuplicate = errors.New("association: option already selected")
	// ErrMaxReached reports an add rejected because the selection is full.
	ErrMaxReached = errors.New("association: maximum number of items reached")
	// ErrNotSelected reports a remove for an option that is not selected.
	ErrNotSelected = errors.New("association: option not selected")
	// ErrUnknownOption reports an action referencing an option key that is not
	// part of the current snapshot.
	ErrUnknownOption = errors.New("association: unknown option")
	// ErrUnknownAction reports an unsupported action kind.
	ErrUnknownAction = errors.New("association: unknown action")
	// ErrNoTarget reports a remove action with neither an option key nor an
	// index.
	ErrNoTarget = errors.New("association: remove needs an option key or index")
)

// Outcome is the result of an add or remove.
type Outcome int

// Unknown is returned alongside a non-nil error; nothing was attempted.
const Unknown Outcome = -1

const (
	Accepted Outcome = iota
	RejectedDuplicate
	RejectedMaxReached
	NotSelected
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case RejectedDuplicate:
		return "rejected_duplicate"
	case RejectedMaxReached:
		return "rejected_max_reached"
	case NotSelected:
		return "not_selected"
	default:
		return "unknown"
	}
}

// OK reports whether the operation changed the selection.
func (o Outcome) OK() bool {
	return o == Accepted
}

// Err maps the outcome onto a sentinel error. Accepted yields nil.
func (o Outcome) Err() error {
	switch o {
	case Accepted:
		return nil
	case RejectedDuplicate:
		return ErrDuplicate
	case RejectedMaxReached:
		return ErrMaxReached
	case NotSelected:
		return ErrNotSelected
	default:
		return errors.New("association: unknown outcome")
	}
}
