// Package plugin defines the build lifecycle hooks that handbook plugins
// implement. The build orchestrator calls them at fixed points: once per
// discovered content node, once to create pages, and once after outputs are
// ready.
package plugin

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/handbook/internal/config"
	"git.home.luguber.info/inful/handbook/internal/content"
)

// Plugin is the identity every plugin provides.
type Plugin interface {
	// Metadata returns the plugin's name, version and type.
	Metadata() PluginMetadata

	// Validate checks that the plugin can run with cfg.
	Validate(cfg *config.Config) error
}

// NodeCreator is called for every content node after discovery.
// Implementations must not depend on the order nodes are visited in.
type NodeCreator interface {
	Plugin
	OnCreateNode(ctx context.Context, pc *PluginContext, node *content.Node) error
}

// PageCreator is called once after every node was created.
// It returns only when all of its pages and redirects were emitted.
type PageCreator interface {
	Plugin
	CreatePages(ctx context.Context, pc *PluginContext) error
}

// PostBuilder is called once after pages were created.
type PostBuilder interface {
	Plugin
	OnPostBuild(ctx context.Context, pc *PluginContext) error
}

// PluginMetadata describes a plugin's identity.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "routes").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	Type PluginType

	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}

// BasePlugin provides a Validate that accepts any configuration.
type BasePlugin struct{}

// Validate is a no-op default implementation.
func (BasePlugin) Validate(*config.Config) error {
	return nil
}
