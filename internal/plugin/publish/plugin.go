// Package publish writes the route manifest and the redirects file once
// pages were created.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/handbook/internal/config"
	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"git.home.luguber.info/inful/handbook/internal/logfields"
	"git.home.luguber.info/inful/handbook/internal/pages"
	"git.home.luguber.info/inful/handbook/internal/plugin"
)

const (
	Name    = "publish"
	Version = "v1.0.0"
)

// Manifest is the JSON document describing one build's routes.
type Manifest struct {
	BuildID            string           `json:"buildId"`
	DefaultTranslation string           `json:"defaultTranslation"`
	GeneratedAt        time.Time        `json:"generatedAt"`
	Pages              []pages.Page     `json:"pages"`
	Redirects          []pages.Redirect `json:"redirects"`
}

// Plugin implements plugin.PostBuilder.
type Plugin struct {
	now func() time.Time
}

var _ plugin.PostBuilder = (*Plugin)(nil)

// New returns the publish plugin.
func New() *Plugin {
	return &Plugin{now: time.Now}
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     Version,
		Type:        plugin.PluginTypePublisher,
		Description: "Writes routes.json and the _redirects file",
	}
}

// Validate rejects output file names that would escape the output directory.
func (p *Plugin) Validate(cfg *config.Config) error {
	return cfg.Validate()
}

// OnPostBuild writes both output files into the configured directory.
func (p *Plugin) OnPostBuild(_ context.Context, pc *plugin.PluginContext) error {
	out := pc.Config.Output
	if err := os.MkdirAll(out.Directory, 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output directory").
			WithContext("path", out.Directory).Build()
	}

	m := Manifest{
		BuildID:            pc.BuildID,
		DefaultTranslation: pc.Config.Site.DefaultTranslation,
		GeneratedAt:        p.now().UTC(),
		Pages:              nonNil(pc.Emitted.Pages()),
		Redirects:          nonNil(pc.Emitted.Redirects()),
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(out.Directory, out.ManifestFile)
	if err := writeFile(manifestPath, append(data, '\n')); err != nil {
		return err
	}

	redirectsPath := filepath.Join(out.Directory, out.RedirectsFile)
	if err := writeFile(redirectsPath, RedirectsFile(m.Redirects)); err != nil {
		return err
	}

	pc.Logger.Info("Routes published",
		logfields.Path(manifestPath),
		logfields.Count(len(m.Pages)))
	return nil
}

// RedirectsFile renders redirects in the `_redirects` format: one
// "from to status" line per redirect.
func RedirectsFile(redirects []pages.Redirect) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Generated by handbook. Do not edit.\n")
	for _, r := range redirects {
		status := 302
		if r.IsPermanent {
			status = 301
		}
		fmt.Fprintf(&buf, "%s  %s  %d\n", r.FromPath, r.ToPath, status)
	}
	return buf.Bytes()
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write output file").
			WithContext("path", path).Build()
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
