package fields

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Renderer writes markup for a field into buf. Renderers must keep the
// onChange(fieldKey, value) convention when wiring props.HandleChange.
type Renderer func(buf *bytes.Buffer, props Props) error

// Middleware wraps a renderer, for example to decorate or replace its output.
type Middleware func(next Renderer) Renderer

type entry struct {
	renderer Renderer
	priority int
	order    int
}

// Registry maps field types to renderers. Higher priority wins; equal
// priorities fall back to the latest registration. Middleware wraps the
// winning renderer in registration order, so the last registered middleware
// is the outermost. Call Freeze once startup wiring is done; after that the
// resolved table is fixed and further mutation fails with ErrFrozen.
type Registry struct {
	mu       sync.RWMutex
	entries  map[model.FieldType][]entry
	wrappers map[model.FieldType][]Middleware
	resolved map[model.FieldType]Renderer
	seq      int
	frozen   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make(map[model.FieldType][]entry),
		wrappers: make(map[model.FieldType][]Middleware),
	}
}

// Register adds a renderer for a field type at the given priority.
func (r *Registry) Register(fieldType model.FieldType, priority int, renderer Renderer) error {
	if fieldType = normalize(fieldType); fieldType == "" {
		return fmt.Errorf("fields: field type is required")
	}
	if renderer == nil {
		return fmt.Errorf("fields: renderer for %q is nil", fieldType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("fields: register %q: %w", fieldType, ErrFrozen)
	}
	r.seq++
	r.entries[fieldType] = append(r.entries[fieldType], entry{
		renderer: renderer,
		priority: priority,
		order:    r.seq,
	})
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(fieldType model.FieldType, priority int, renderer Renderer) {
	if err := r.Register(fieldType, priority, renderer); err != nil {
		panic(err)
	}
}

// Wrap installs middleware around whichever renderer wins for fieldType.
func (r *Registry) Wrap(fieldType model.FieldType, mw Middleware) error {
	if fieldType = normalize(fieldType); fieldType == "" {
		return fmt.Errorf("fields: field type is required")
	}
	if mw == nil {
		return fmt.Errorf("fields: middleware for %q is nil", fieldType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("fields: wrap %q: %w", fieldType, ErrFrozen)
	}
	r.wrappers[fieldType] = append(r.wrappers[fieldType], mw)
	return nil
}

// Freeze resolves every registered type once and rejects later mutation.
// Calling Freeze more than once is a no-op.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return
	}
	r.resolved = make(map[model.FieldType]Renderer, len(r.entries))
	for fieldType := range r.entries {
		if renderer, ok := r.resolveLocked(fieldType); ok {
			r.resolved[fieldType] = renderer
		}
	}
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Resolve returns the effective renderer for a field type, middleware applied.
func (r *Registry) Resolve(fieldType model.FieldType) (Renderer, bool) {
	fieldType = normalize(fieldType)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.frozen {
		renderer, ok := r.resolved[fieldType]
		return renderer, ok
	}
	return r.resolveLocked(fieldType)
}

// Render resolves the renderer for the source's field type and invokes it
// with props built from the source.
func (r *Registry) Render(buf *bytes.Buffer, source DataSource) error {
	if buf == nil {
		return fmt.Errorf("fields: buffer is nil")
	}
	if source == nil {
		return fmt.Errorf("fields: data source is nil")
	}
	props := PropsFrom(source)
	renderer, ok := r.Resolve(props.Field.Type)
	if !ok {
		return fmt.Errorf("fields: render %q (%s): %w", props.Field.Key, props.Field.Type, ErrNoRenderer)
	}
	return renderer(buf, props)
}

// Types returns the sorted list of field types with at least one renderer.
func (r *Registry) Types() []model.FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]model.FieldType, 0, len(r.entries))
	for fieldType, entries := range r.entries {
		if len(entries) > 0 {
			types = append(types, fieldType)
		}
	}
	slices.Sort(types)
	return types
}

// Clone returns an unfrozen copy so callers can layer overrides on top of a
// shared default registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	cloned.seq = r.seq
	for fieldType, entries := range r.entries {
		cloned.entries[fieldType] = slices.Clone(entries)
	}
	for fieldType, wrappers := range r.wrappers {
		cloned.wrappers[fieldType] = slices.Clone(wrappers)
	}
	return cloned
}

func (r *Registry) resolveLocked(fieldType model.FieldType) (Renderer, bool) {
	entries := r.entries[fieldType]
	if len(entries) == 0 {
		return nil, false
	}
	winner := entries[0]
	for _, candidate := range entries[1:] {
		if candidate.priority > winner.priority ||
			(candidate.priority == winner.priority && candidate.order > winner.order) {
			winner = candidate
		}
	}
	renderer := winner.renderer
	for _, mw := range r.wrappers[fieldType] {
		if wrapped := mw(renderer); wrapped != nil {
			renderer = wrapped
		}
	}
	return renderer, true
}

func normalize(fieldType model.FieldType) model.FieldType {
	return model.ParseFieldType(string(fieldType))
}
