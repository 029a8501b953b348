// Package routes is the plugin that classifies content paths into routes and
// creates one page per chapter, plus legacy redirects for the default
// translation.
package routes

import (
	"context"
	"errors"
	"log/slog"

	"git.home.luguber.info/inful/handbook/internal/config"
	"git.home.luguber.info/inful/handbook/internal/content"
	"git.home.luguber.info/inful/handbook/internal/logfields"
	"git.home.luguber.info/inful/handbook/internal/pages"
	"git.home.luguber.info/inful/handbook/internal/plugin"
	"git.home.luguber.info/inful/handbook/internal/query"
	"git.home.luguber.info/inful/handbook/internal/route"
)

const (
	Name    = "routes"
	Version = "v1.0.0"
)

// Plugin implements plugin.NodeCreator and plugin.PageCreator.
type Plugin struct {
	classifier *route.Classifier
}

// New returns the routes plugin resolving node paths with content.ResolvePath.
func New() *Plugin {
	return &Plugin{classifier: route.NewClassifier(content.ResolvePath)}
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     Version,
		Type:        plugin.PluginTypeRoutes,
		Description: "Derives guide/framework/language/chapter routes and creates chapter pages",
	}
}

func (p *Plugin) Validate(cfg *config.Config) error {
	return config.ValidateTranslationKey(cfg.Site.DefaultTranslation)
}

// OnCreateNode classifies the node path and attaches the six route fields.
// A malformed path is fatal for the build.
func (p *Plugin) OnCreateNode(_ context.Context, pc *plugin.PluginContext, node *content.Node) error {
	m, err := p.classifier.ClassifyFile(node)
	if err != nil {
		var mpe *route.MalformedPathError
		if errors.As(err, &mpe) {
			return mpe.Classified().WithContext("file", node.RelPath)
		}
		return err
	}

	if err := route.Annotate(node, m); err != nil {
		return err
	}

	pc.Logger.Debug("Route classified",
		logfields.Slug(m.Slug),
		logfields.Guide(m.Guide),
		logfields.Framework(m.Framework),
		logfields.Language(m.Language),
		logfields.Chapter(m.Chapter),
		slog.Bool("has_language_name", m.HasLanguageName))
	return nil
}

// CreatePages queries every classified node and emits pages and redirects.
// It returns after the last command was accepted.
func (p *Plugin) CreatePages(ctx context.Context, pc *plugin.PluginContext) error {
	table, err := query.AllPages(pc.Graph)
	if err != nil {
		return err
	}
	site := query.Site{DefaultTranslation: pc.Config.Site.DefaultTranslation}

	emitter := pages.NewEmitter(pc.Config.Pages.Component, pc.Logger)
	sum, err := emitter.Emit(ctx, table, site.DefaultTranslation, pc.Actions)
	if err != nil {
		return err
	}

	pc.Logger.Info("Pages created",
		slog.Int("pages", sum.Pages),
		slog.Int("redirects", sum.Redirects),
		slog.String("default_translation", site.DefaultTranslation))
	return nil
}
