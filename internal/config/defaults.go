package config

import "time"

const (
	DefaultBasePath      = "content"
	DefaultComponent     = "src/dynamic-pages/visual-testing-handbook/chapter.js"
	DefaultOutputDir     = "public"
	DefaultManifestFile  = "routes.json"
	DefaultRedirectsFile = "_redirects"
	DefaultWatchDebounce = 500 * time.Millisecond
)

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.Content.BasePath == "" {
		c.Content.BasePath = DefaultBasePath
	}
	if c.Pages.Component == "" {
		c.Pages.Component = DefaultComponent
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Output.ManifestFile == "" {
		c.Output.ManifestFile = DefaultManifestFile
	}
	if c.Output.RedirectsFile == "" {
		c.Output.RedirectsFile = DefaultRedirectsFile
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultWatchDebounce.String()
	}
}

// WatchDebounce returns the parsed debounce interval. Validate guarantees
// the value parses.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return DefaultWatchDebounce
	}
	return d
}
