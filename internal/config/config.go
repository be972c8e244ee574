package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvConfigPath names the env var pointing at a config file.
const EnvConfigPath = "FORMFIELDS_CONFIG"

// Config holds CLI configuration.
type Config struct {
	Schema  SchemaConfig  `mapstructure:"schema"`
	Render  RenderConfig  `mapstructure:"render"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Server  ServerConfig  `mapstructure:"server"`
}

// SchemaConfig selects where field descriptors come from.
type SchemaConfig struct {
	Path      string `mapstructure:"path"`
	OpenAPI   string `mapstructure:"openapi"`
	Component string `mapstructure:"component"`
	Field     string `mapstructure:"field"`
}

// RenderConfig holds presentation settings.
type RenderConfig struct {
	Renderer     string            `mapstructure:"renderer"`
	TemplatesDir string            `mapstructure:"templates_dir"`
	Output       string            `mapstructure:"output"`
	Format       string            `mapstructure:"format"`
	PageSize     int               `mapstructure:"page_size"`
	Labels       map[string]string `mapstructure:"labels"`
}

// CatalogConfig holds search settings.
type CatalogConfig struct {
	Limit         int    `mapstructure:"limit"`
	FuzzyDistance int    `mapstructure:"fuzzy_distance"`
	Query         string `mapstructure:"query"`
}

// ServerConfig enables the preview server when Addr is set.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from defaults, an optional file and env. path wins
// over FORMFIELDS_CONFIG; without either, ./formfields.yaml is used when
// present. Env var overrides use prefix FORMFIELDS_.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("schema.path", "")
	v.SetDefault("schema.openapi", "")
	v.SetDefault("schema.component", "")
	v.SetDefault("schema.field", "")
	v.SetDefault("render.renderer", "html")
	v.SetDefault("render.templates_dir", "")
	v.SetDefault("render.output", "")
	v.SetDefault("render.format", "json")
	v.SetDefault("render.page_size", 10)
	v.SetDefault("catalog.limit", 20)
	v.SetDefault("catalog.fuzzy_distance", 2)
	v.SetDefault("catalog.query", "")
	v.SetDefault("server.addr", "")

	v.SetConfigType("yaml")

	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("formfields")
	}

	v.SetEnvPrefix("FORMFIELDS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal config: %w", err)
	}
	return c, c.Validate()
}

// Validate checks enum-like settings.
func (c Config) Validate() error {
	switch c.Render.Renderer {
	case "html", "tui":
	default:
		return fmt.Errorf("config: unknown renderer %q", c.Render.Renderer)
	}
	switch c.Render.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Render.Format)
	}
	return nil
}
