package plugin

import (
	"log/slog"

	"git.home.luguber.info/inful/handbook/internal/config"
	"git.home.luguber.info/inful/handbook/internal/content"
	"git.home.luguber.info/inful/handbook/internal/logfields"
	"git.home.luguber.info/inful/handbook/internal/pages"
)

// PluginContext gives plugins access to the build they run in.
type PluginContext struct {
	// Logger is scoped to the build.
	Logger *slog.Logger

	Config *config.Config

	// BuildID uniquely identifies this build.
	BuildID string

	// Graph holds every discovered content node.
	Graph *content.Graph

	// Actions receives page and redirect commands.
	Actions pages.Actions

	// Emitted holds what was emitted so far; publishers read it.
	Emitted *pages.Recorder
}

// NewPluginContext creates a plugin context for one build.
func NewPluginContext(logger *slog.Logger, cfg *config.Config, buildID string, graph *content.Graph, actions pages.Actions, emitted *pages.Recorder) *PluginContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &PluginContext{
		Logger:  logger.With(logfields.BuildID(buildID)),
		Config:  cfg,
		BuildID: buildID,
		Graph:   graph,
		Actions: actions,
		Emitted: emitted,
	}
}

// For returns a copy of pc whose logger is tagged with the plugin name.
func (pc *PluginContext) For(p Plugin) *PluginContext {
	scoped := *pc
	scoped.Logger = pc.Logger.With(logfields.Plugin(p.Metadata().Name))
	return &scoped
}
