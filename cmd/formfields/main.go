package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/goliatone/go-formfields/internal/config"
	"github.com/goliatone/go-formfields/pkg/catalog"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/preview"
	"github.com/goliatone/go-formfields/pkg/renderers/tui"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfields/pkg/schema"
)

func main() {
	configPath := flag.String("config", "", "config file (defaults to $FORMFIELDS_CONFIG or ./formfields.yaml)")
	schemaPath := flag.String("schema", "", "descriptor file or directory (YAML/JSON)")
	openapiPath := flag.String("openapi", "", "OpenAPI document to derive fields from")
	component := flag.String("component", "", "OpenAPI component schema name")
	fieldKey := flag.String("field", "", "field key to render (first field if empty)")
	renderer := flag.String("renderer", "", "renderer to use: html or tui")
	query := flag.String("query", "", "initial search term for association fields")
	output := flag.String("output", "", "output file (stdout if empty)")
	serve := flag.String("serve", "", "serve an HTTP preview on this address instead of rendering once")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	override := func(name string, dst *string, value string) {
		if set[name] {
			*dst = value
		}
	}
	override("schema", &cfg.Schema.Path, *schemaPath)
	override("openapi", &cfg.Schema.OpenAPI, *openapiPath)
	override("component", &cfg.Schema.Component, *component)
	override("field", &cfg.Schema.Field, *fieldKey)
	override("renderer", &cfg.Render.Renderer, *renderer)
	override("query", &cfg.Catalog.Query, *query)
	override("output", &cfg.Render.Output, *output)
	override("serve", &cfg.Server.Addr, *serve)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	field, err := loadField(ctx, cfg.Schema)
	if err != nil {
		log.Fatalf("Failed to load field: %v", err)
	}

	cat := catalog.New(field.Options, catalog.WithFuzzyDistance(cfg.Catalog.FuzzyDistance))
	source := catalog.NewSource(field, cat, initialValue(field),
		catalog.WithLimit(cfg.Catalog.Limit),
		catalog.WithQueryTerm(cfg.Catalog.Query),
	)

	if cfg.Server.Addr != "" {
		if err := servePreview(ctx, cfg, cat, source); err != nil {
			log.Fatalf("Preview server failed: %v", err)
		}
		return
	}

	var out []byte
	switch cfg.Render.Renderer {
	case "tui":
		session := tui.NewSession(
			tui.WithOutputFormat(tui.OutputFormat(cfg.Render.Format)),
			tui.WithPageSize(cfg.Render.PageSize),
		)
		out, err = session.Render(ctx, source)
		if errors.Is(err, tui.ErrAborted) {
			log.Fatalf("Aborted")
		}
	default:
		out, err = renderHTML(cfg.Render, source)
	}
	if err != nil {
		log.Fatalf("Failed to render field %q: %v", field.Key, err)
	}

	if cfg.Render.Output != "" {
		if err := os.WriteFile(cfg.Render.Output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Field written to %s\n", cfg.Render.Output)
		return
	}
	fmt.Println(string(out))
}

func loadField(ctx context.Context, cfg config.SchemaConfig) (model.Field, error) {
	var candidates []model.Field
	switch {
	case cfg.OpenAPI != "":
		data, err := os.ReadFile(cfg.OpenAPI)
		if err != nil {
			return model.Field{}, err
		}
		candidates, err = schema.FromOpenAPI(ctx, data, cfg.Component)
		if err != nil {
			return model.Field{}, err
		}
	case cfg.Path != "":
		store, err := loadStore(cfg.Path)
		if err != nil {
			return model.Field{}, err
		}
		candidates = store.Fields()
	default:
		return model.Field{}, errors.New("either a schema path or an OpenAPI document is required")
	}

	if len(candidates) == 0 {
		return model.Field{}, errors.New("no fields found")
	}
	if cfg.Field == "" {
		return candidates[0], nil
	}
	for _, field := range candidates {
		if field.Key == cfg.Field {
			return field, nil
		}
	}
	return model.Field{}, fmt.Errorf("field %q not found", cfg.Field)
}

func loadStore(path string) (*schema.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return schema.LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Parse(data, filepath.Base(path))
}

func initialValue(field model.Field) any {
	if field.Type == model.FieldTypeAssociation {
		return model.Selection{}
	}
	return ""
}

func newRegistry(cfg config.RenderConfig) (*fields.Registry, error) {
	registry, err := vanilla.NewDefaultRegistry(
		vanilla.WithTemplatesDir(cfg.TemplatesDir),
		vanilla.WithLabels(cfg.Labels),
	)
	if err != nil {
		return nil, err
	}
	registry.Freeze()
	return registry, nil
}

func renderHTML(cfg config.RenderConfig, source fields.DataSource) ([]byte, error) {
	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := registry.Render(&buf, source); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func servePreview(ctx context.Context, cfg config.Config, cat *catalog.Catalog, source *catalog.Source) error {
	registry, err := newRegistry(cfg.Render)
	if err != nil {
		return err
	}
	server, err := preview.New(registry, source,
		preview.WithCatalog(cat, catalog.WithLimits(cfg.Catalog.Limit, 100)),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	patterns, err := server.RegisterRoutes(mux, "/")
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("Serving %s on %s: %v", source.Snapshot().Field.Key, cfg.Server.Addr, patterns)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
