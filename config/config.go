// Package config loads the settings of the forecast tool from a YAML file, environment
// variables and defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/etnz/forecast/date"
	"github.com/etnz/forecast/obr"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Config holds the tool settings.
type Config struct {
	// CacheDir keeps downloaded workbooks. Defaults to a directory in the system temp dir.
	CacheDir string `yaml:"cache_dir"`
	// DataDir holds extracted editions as JSONL files.
	DataDir     string        `yaml:"data_dir" default:"forecasts"`
	LogLevel    string        `yaml:"log_level" default:"warn" validate:"oneof=trace debug info warn error disabled"`
	LogFormat   string        `yaml:"log_format" default:"console" validate:"oneof=console json"`
	HTTPTimeout time.Duration `yaml:"http_timeout" default:"60s" validate:"gt=0"`
	Editions    []Edition     `yaml:"editions" validate:"unique=Name,dive"`
}

// Edition is a catalog entry, where to download an edition's workbook.
type Edition struct {
	Name      string `yaml:"name" validate:"required"`
	Published string `yaml:"published" validate:"omitempty,datetime=2006-01-02"`
	URL       string `yaml:"url" validate:"required,url"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads the YAML file at path over the default configuration, applies the
// environment overrides and validates the result. An empty path loads the default
// configuration only.
//
// Environment overrides: FORECAST_CACHE_DIR, FORECAST_DATA_DIR, FORECAST_LOG_LEVEL.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
		// Fields explicitly emptied by the file get their defaults back.
		if err := defaults.Set(c); err != nil {
			return nil, fmt.Errorf("set defaults: %w", err)
		}
	}

	if v := os.Getenv("FORECAST_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("FORECAST_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("FORECAST_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(os.TempDir(), "forecast")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks the configuration, reporting every invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	var errs error
	for _, fe := range fieldErrors {
		errs = errors.Join(errs, errors.New(message(fe)))
	}
	return errs
}

// message describes a field error using the YAML path of the field.
func message(fe validator.FieldError) string {
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "unique":
		return fmt.Sprintf("%s must not repeat a %s", field, strings.ToLower(fe.Param()))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// Catalog returns the configured editions for the OBR loader.
func (c *Config) Catalog() []obr.Edition {
	list := make([]obr.Edition, 0, len(c.Editions))
	for _, e := range c.Editions {
		// Published has been validated, a parse error leaves it zero.
		published, _ := date.Parse(e.Published)
		list = append(list, obr.Edition{Name: e.Name, Published: published, URL: e.URL})
	}
	return list
}
