package vanilla

import (
	"bytes"
	"fmt"
	"io/fs"
	"maps"

	"github.com/goliatone/go-formfields/pkg/association"
	"github.com/goliatone/go-formfields/pkg/choice"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	rendertemplate "github.com/goliatone/go-formfields/pkg/render/template"
	"github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
)

const (
	associationTemplate = "templates/association.tpl"
	radioTemplate       = "templates/radio.tpl"
	radioImageTemplate  = "templates/radio_image.tpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	labels           map[string]string
}

// DefaultLabels are the button and link captions used by the templates.
var DefaultLabels = map[string]string{
	"add":    "Add",
	"remove": "Remove",
	"edit":   "Edit",
	"search": "Search",
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must keep the templates/<type>.tpl layout.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. The directory
// must contain the templates/<type>.tpl layout.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = path
	}
}

// WithLabels overrides template captions by name (add, remove, edit,
// search). Unknown names are passed through for custom templates.
func WithLabels(labels map[string]string) Option {
	return func(cfg *config) {
		maps.Copy(cfg.labels, labels)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer draws association and radio fields as plain HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), labels: maps.Clone(DefaultLabels)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		source := gotemplate.WithFS(cfg.templateFS)
		if cfg.templateDir != "" {
			source = gotemplate.WithBaseDir(cfg.templateDir)
		} else if cfg.templateFS == nil {
			source = gotemplate.WithFS(TemplatesFS())
		}
		engine, err := gotemplate.New(source)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := renderer.GlobalContext(map[string]any{"labels": cfg.labels}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: set labels: %w", err)
	}
	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Register installs the vanilla renderers into registry at the given
// priority.
func (r *Renderer) Register(registry *fields.Registry, priority int) error {
	for fieldType, renderer := range map[model.FieldType]fields.Renderer{
		model.FieldTypeAssociation: r.RenderAssociation,
		model.FieldTypeRadio:       r.RenderRadio,
		model.FieldTypeRadioImage:  r.RenderRadio,
	} {
		if err := registry.Register(fieldType, priority, renderer); err != nil {
			return fmt.Errorf("vanilla renderer: %w", err)
		}
	}
	return nil
}

// NewDefaultRegistry returns an unfrozen registry holding the vanilla
// renderers at priority 0, ready for host overrides.
func NewDefaultRegistry(options ...Option) (*fields.Registry, error) {
	renderer, err := New(options...)
	if err != nil {
		return nil, err
	}
	registry := fields.NewRegistry()
	if err := renderer.Register(registry, 0); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderAssociation is the fields.Renderer for association fields.
func (r *Renderer) RenderAssociation(buf *bytes.Buffer, props fields.Props) error {
	view := association.BuildView(props.Snapshot())
	return r.execute(buf, associationTemplate, associationData(view))
}

// RenderRadio is the fields.Renderer for radio and radio_image fields.
func (r *Renderer) RenderRadio(buf *bytes.Buffer, props fields.Props) error {
	view := choice.BuildView(props.Snapshot())
	name := radioTemplate
	if view.Field.Type == model.FieldTypeRadioImage {
		name = radioImageTemplate
	}
	return r.execute(buf, name, radioData(view))
}

func (r *Renderer) execute(buf *bytes.Buffer, name string, data map[string]any) error {
	if r.templates == nil {
		return fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if buf == nil {
		return fmt.Errorf("vanilla renderer: buffer is nil")
	}
	if _, err := r.templates.RenderTemplate(name, data, buf); err != nil {
		return fmt.Errorf("vanilla renderer: render %s: %w", name, err)
	}
	return nil
}

func fieldData(field model.Field) map[string]any {
	return map[string]any{
		"key":         field.Key,
		"id":          controlID(field.Key),
		"type":        string(field.Type),
		"label":       field.Label,
		"description": field.Description,
		"help_text":   field.HelpText,
		"max":         field.MaxSelectable,
		"bounded":     field.Bounded(),
	}
}

func optionData(option model.Option) map[string]any {
	return map[string]any{
		"key":       option.Key(),
		"id":        option.ID,
		"type":      option.Type,
		"subtype":   option.Subtype,
		"title":     sanitizeInline(option.Title),
		"thumbnail": safeURL(option.ThumbnailURL),
		"edit_url":  safeURL(option.EditURL),
	}
}

func associationData(view association.View) map[string]any {
	catalog := make([]map[string]any, 0, len(view.Catalog))
	for _, entry := range view.Catalog {
		data := optionData(entry.Option)
		data["selected"] = entry.Selected
		data["can_add"] = entry.CanAdd()
		if !entry.CanAdd() {
			data["reason"] = entry.AddOutcome.String()
		}
		catalog = append(catalog, data)
	}

	selection := make([]map[string]any, 0, len(view.Selection))
	for _, entry := range view.Selection {
		data := optionData(entry.Option)
		data["index"] = entry.Index
		selection = append(selection, data)
	}

	return map[string]any{
		"field":      fieldData(view.Field),
		"query_term": view.QueryTerm,
		"counter": map[string]any{
			"visible": view.Counter.Visible,
			"total":   view.Counter.Total,
		},
		"catalog":       catalog,
		"selection":     selection,
		"limit_reached": view.LimitReached,
	}
}

func radioData(view choice.View) map[string]any {
	items := make([]map[string]any, 0, len(view.Choices))
	for idx, item := range view.Choices {
		items = append(items, map[string]any{
			"id":      fmt.Sprintf("%s-%d", controlID(view.Field.Key), idx),
			"value":   item.Choice.Value,
			"label":   item.Choice.Label,
			"image":   safeURL(item.Image),
			"checked": item.Checked,
		})
	}
	return map[string]any{
		"field":    fieldData(view.Field),
		"selected": view.Selected,
		"choices":  items,
	}
}
