// Package formfields is the quick-start entry point: load descriptors, wrap
// them in a catalogue backed data source and render them with the default
// HTML renderers.
package formfields

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-formfields/pkg/catalog"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// Field aliases model.Field for callers that only touch the root package.
type Field = model.Field

// Option aliases model.Option.
type Option = model.Option

// Selection aliases model.Selection.
type Selection = model.Selection

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *fields.Registry
	defaultRegistryErr  error
)

// DefaultRegistry returns the shared, frozen registry holding the vanilla
// renderers. Use Clone to layer overrides on top of it.
func DefaultRegistry() (*fields.Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = vanilla.NewDefaultRegistry()
		if defaultRegistryErr == nil {
			defaultRegistry.Freeze()
		}
	})
	return defaultRegistry, defaultRegistryErr
}

// NewSource wraps field in a catalogue backed data source seeded with value.
// A nil value starts association fields with an empty selection and single
// choice fields unset.
func NewSource(field Field, value any, opts ...catalog.SourceOption) *catalog.Source {
	if value == nil {
		if field.Type == model.FieldTypeAssociation {
			value = model.Selection{}
		} else {
			value = ""
		}
	}
	return catalog.NewSource(field, catalog.New(field.Options), value, opts...)
}

// RenderHTML renders source with the default registry.
func RenderHTML(source fields.DataSource) ([]byte, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("formfields: default registry: %w", err)
	}
	var buf bytes.Buffer
	if err := registry.Render(&buf, source); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadFields reads every descriptor document in fsys, in document order.
func LoadFields(fsys fs.FS) ([]Field, error) {
	store, err := schema.LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	return store.Fields(), nil
}

// FieldsFromOpenAPI derives descriptors from an OpenAPI component schema.
func FieldsFromOpenAPI(ctx context.Context, data []byte, component string) ([]Field, error) {
	return schema.FromOpenAPI(ctx, data, component)
}
