// Package config loads formdoc settings from an optional YAML file, applies
// FORMDOC_* environment overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdoc/pkg/document"
	"github.com/goliatone/go-formdoc/pkg/model"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMDOC_"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	Output  OutputConfig  `yaml:"output"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `yaml:"driver" validate:"oneof=memory file"`
	Dir    string `yaml:"dir" validate:"required_if=Driver file"`
}

// SessionConfig tunes form sessions.
type SessionConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// OutputConfig controls document generation.
type OutputConfig struct {
	HTMLPolicy string   `yaml:"html_policy" validate:"oneof=raw escape sanitize"`
	Roles      []string `yaml:"roles" validate:"dive,oneof=pm frontend backend"`
	Mode       string   `yaml:"mode" validate:"oneof=rich markdown"`
	// Presets points at a YAML or JSON preset document overriding template labels,
	// placeholders, required flags and roles.
	Presets string `yaml:"presets"`
}

// ExportConfig controls file export.
type ExportConfig struct {
	Variant string `yaml:"variant" validate:"oneof=default compact"`
	Dir     string `yaml:"dir"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{Driver: "file", Dir: ".formdoc"},
		Session: SessionConfig{Debounce: 500 * time.Millisecond},
		Output:  OutputConfig{HTMLPolicy: string(document.PolicyRaw), Mode: string(model.ModeRich)},
		Export:  ExportConfig{Variant: "default", Dir: "."},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (when non-empty), applies environment overrides from the
// process environment and validates the result.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if lookup != nil {
		if err := cfg.applyEnv(lookup); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SERVER_ADDR":    &c.Server.Addr,
		"STORAGE_DRIVER": &c.Storage.Driver,
		"STORAGE_DIR":    &c.Storage.Dir,
		"HTML_POLICY":    &c.Output.HTMLPolicy,
		"MODE":           &c.Output.Mode,
		"PRESETS":        &c.Output.Presets,
		"EXPORT_VARIANT": &c.Export.Variant,
		"EXPORT_DIR":     &c.Export.Dir,
		"LOG_LEVEL":      &c.Log.Level,
		"LOG_FORMAT":     &c.Log.Format,
	}
	for key, dst := range strs {
		if value, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(value)
		}
	}

	durations := map[string]*time.Duration{
		"SESSION_DEBOUNCE":        &c.Session.Debounce,
		"SERVER_READ_TIMEOUT":     &c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    &c.Server.WriteTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": &c.Server.ShutdownTimeout,
	}
	for key, dst := range durations {
		value, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
	}

	if value, ok := lookup(EnvPrefix + "ROLES"); ok {
		c.Output.Roles = nil
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				c.Output.Roles = append(c.Output.Roles, part)
			}
		}
	}
	return nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			parts := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid: %s", strings.Join(parts, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Roles returns the configured default viewer roles.
func (c *Config) Roles() []model.Role {
	out := make([]model.Role, 0, len(c.Output.Roles))
	for _, role := range c.Output.Roles {
		out = append(out, model.Role(role))
	}
	return out
}

// Policy returns the configured HTML content policy.
func (c *Config) Policy() document.Policy {
	return document.Policy(c.Output.HTMLPolicy)
}

// Mode returns the configured preview mode.
func (c *Config) Mode() model.PreviewMode {
	return model.PreviewMode(c.Output.Mode)
}
