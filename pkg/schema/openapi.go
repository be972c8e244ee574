package schema

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/catalog"
	"github.com/goliatone/go-formfields/pkg/model"
)

// ExtensionKey is the OpenAPI extension that overrides how a property maps to
// a field. Supported keys: type, label, helpText, max, duplicatesAllowed,
// choices (list of {value,label,image}), images (value -> image URL) and
// options (list of catalogue options).
const ExtensionKey = "x-formfields"

// FromOpenAPI builds descriptors for the properties of a component schema.
// Array properties become association fields (maxItems bounds the selection,
// uniqueItems forbids duplicates); string enums become radio fields. Other
// properties are skipped unless the extension names a type. Fields are
// returned in property name order.
func FromOpenAPI(ctx context.Context, data []byte, component string) ([]model.Field, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("schema: openapi document has no components")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema: component %q not found", component)
	}

	names := make([]string, 0, len(ref.Value.Properties))
	for name := range ref.Value.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]model.Field, 0, len(names))
	for _, name := range names {
		prop := ref.Value.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		field, ok, err := fieldFromSchema(name, prop.Value)
		if err != nil {
			return nil, fmt.Errorf("schema: component %q property %q: %w", component, name, err)
		}
		if ok {
			out = append(out, field)
		}
	}
	return out, nil
}

func fieldFromSchema(name string, src *openapi3.Schema) (model.Field, bool, error) {
	ext := extensionMap(src.Extensions)

	raw := fieldFile{
		Key:         name,
		Label:       firstNonEmpty(stringValue(ext["label"]), src.Title),
		Description: src.Description,
		HelpText:    stringValue(ext["helpText"]),
	}

	switch {
	case stringValue(ext["type"]) != "":
		raw.Type = stringValue(ext["type"])
	case src.Type != nil && src.Type.Is(openapi3.TypeArray):
		raw.Type = string(model.FieldTypeAssociation)
	case src.Type != nil && src.Type.Is(openapi3.TypeString) && len(src.Enum) > 0:
		raw.Type = string(model.FieldTypeRadio)
	default:
		return model.Field{}, false, nil
	}

	if model.ParseFieldType(raw.Type) == model.FieldTypeAssociation {
		if src.MaxItems != nil {
			raw.Max = int(*src.MaxItems)
		}
		raw.DuplicatesAllowed = !src.UniqueItems
		if value, ok := ext["max"]; ok {
			raw.Max = intValue(value)
		}
		if value, ok := ext["duplicatesAllowed"].(bool); ok {
			raw.DuplicatesAllowed = value
		}
		raw.Options = optionsValue(ext["options"])
	} else {
		raw.Choices = choicesValue(ext["choices"])
		if len(raw.Choices) == 0 {
			for _, value := range src.Enum {
				s := fmt.Sprint(value)
				raw.Choices = append(raw.Choices, model.Choice{Value: s, Label: s})
			}
		}
		if images, ok := ext["images"].(map[string]any); ok {
			for idx := range raw.Choices {
				if image := stringValue(images[raw.Choices[idx].Value]); image != "" {
					raw.Choices[idx].ImageURL = image
				}
			}
		}
	}

	field, err := normaliseField(raw)
	if err != nil {
		return model.Field{}, false, err
	}
	return field, true, nil
}

func extensionMap(extensions map[string]any) map[string]any {
	if len(extensions) == 0 {
		return map[string]any{}
	}
	if mapped, ok := extensions[ExtensionKey].(map[string]any); ok {
		return mapped
	}
	return map[string]any{}
}

func choicesValue(value any) []model.Choice {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]model.Choice, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Choice{
			Value:    stringValue(entry["value"]),
			Label:    stringValue(entry["label"]),
			ImageURL: stringValue(entry["image"]),
		})
	}
	return out
}

func optionsValue(value any) []model.Option {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]model.Option, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Option{
			ID:           stringValue(entry["id"]),
			Type:         stringValue(entry["type"]),
			Subtype:      stringValue(entry["subtype"]),
			Title:        stringValue(entry["title"]),
			ThumbnailURL: stringValue(entry["thumbnail"]),
			EditURL:      stringValue(entry["editLink"]),
		})
	}
	return catalog.New(out).Options()
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}

func intValue(value any) int {
	switch typed := value.(type) {
	case int:
		return typed
	case int64:
		return int(typed)
	case float64:
		return int(typed)
	default:
		return 0
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
