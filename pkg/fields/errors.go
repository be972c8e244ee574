package fields

import "errors"

var (
	// ErrFrozen is returned when the registry is mutated after Freeze.
	ErrFrozen = errors.New("fields: registry is frozen")
	// ErrNoRenderer is returned when no renderer is registered for a type.
	ErrNoRenderer = errors.New("fields: no renderer registered")
)
