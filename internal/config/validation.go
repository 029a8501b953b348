package config

import (
	"path/filepath"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
)

// Validate checks the configuration after defaults were applied.
func (c *Config) Validate() error {
	if err := ValidateTranslationKey(c.Site.DefaultTranslation); err != nil {
		return err
	}
	for key, name := range map[string]string{
		"output.manifest_file":  c.Output.ManifestFile,
		"output.redirects_file": c.Output.RedirectsFile,
	} {
		if filepath.Base(name) != name {
			return ferrors.ConfigError("output file must be a plain file name").
				WithContext("key", key).WithContext("value", name).Build()
		}
	}
	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d <= 0 {
		return ferrors.ConfigError("watch.debounce must be a positive duration").
			WithContext("value", c.Watch.Debounce).Build()
	}
	return nil
}

// ValidateTranslationKey checks a "<framework>/<language>" key.
func ValidateTranslationKey(key string) error {
	if key == "" {
		return ferrors.ConfigError("site.default_translation is required").Build()
	}
	framework, language, ok := strings.Cut(key, "/")
	if !ok || framework == "" || language == "" || strings.Contains(language, "/") {
		return ferrors.ConfigError("site.default_translation must look like <framework>/<language>").
			WithContext("value", key).Build()
	}
	return nil
}
