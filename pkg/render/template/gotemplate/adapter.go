package gotemplate

import (
	"fmt"
	"io/fs"

	gotemplatepkg "github.com/goliatone/go-template"

	rendertemplate "github.com/goliatone/go-formfields/pkg/render/template"
)

var _ rendertemplate.TemplateRenderer = (*Engine)(nil)

// Option configures the engine before its templates are loaded.
type Option func(*config)

type config struct {
	options []gotemplatepkg.Option
}

// WithFS loads templates from an fs.FS bundle.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.options = append(cfg.options, gotemplatepkg.WithFS(files))
		}
	}
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		if dir != "" {
			cfg.options = append(cfg.options, gotemplatepkg.WithBaseDir(dir))
		}
	}
}

// Engine is a go-template engine exposed through the TemplateRenderer seam.
// Template data is converted through JSON, so numbers reach templates as
// floats; use the integer filter when printing them.
type Engine struct {
	*gotemplatepkg.Engine
}

// New builds an engine. Either WithFS or WithBaseDir is required.
func New(options ...Option) (*Engine, error) {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine, err := gotemplatepkg.NewRenderer(cfg.options...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	return &Engine{Engine: engine}, nil
}
