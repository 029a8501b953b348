// Package config loads the handbook build configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// Config is the root of handbook.yaml.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Pages   PagesConfig   `yaml:"pages"`
	Output  OutputConfig  `yaml:"output"`
	Ledger  LedgerConfig  `yaml:"ledger,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
}

// SiteConfig holds site metadata.
type SiteConfig struct {
	Title string `yaml:"title,omitempty"`
	// DefaultTranslation is a "<framework>/<language>" key; its chapters get
	// legacy /<chapter>/ redirects.
	DefaultTranslation string `yaml:"default_translation"`
}

// ContentConfig locates the markdown chapters.
type ContentConfig struct {
	BasePath string `yaml:"base_path"`
}

// PagesConfig configures emitted pages.
type PagesConfig struct {
	Component string `yaml:"component"`
}

// OutputConfig controls the files written by a build.
type OutputConfig struct {
	Directory     string `yaml:"directory"`
	ManifestFile  string `yaml:"manifest_file"`
	RedirectsFile string `yaml:"redirects_file"`
}

// LedgerConfig enables the sqlite build ledger when Path is set.
type LedgerConfig struct {
	Path string `yaml:"path,omitempty"`
}

// MetricsConfig enables the Prometheus textfile when Textfile is set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`
}

// Load reads, expands, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load .env file").Fatal().Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", path).Fatal().Build()
	}

	cfg, err := Parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").
			WithContext("path", path).Fatal().Build()
	}
	return cfg, nil
}

// Parse decodes YAML from r, applies defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}

	example := Config{
		Site: SiteConfig{
			Title:              "Visual Testing Handbook",
			DefaultTranslation: "react/en",
		},
	}
	example.ApplyDefaults()

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).Build()
	}
	return nil
}
