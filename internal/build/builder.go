package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/handbook/internal/config"
	"git.home.luguber.info/inful/handbook/internal/content"
	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"git.home.luguber.info/inful/handbook/internal/ledger"
	"git.home.luguber.info/inful/handbook/internal/logfields"
	"git.home.luguber.info/inful/handbook/internal/metrics"
	"git.home.luguber.info/inful/handbook/internal/pages"
	"git.home.luguber.info/inful/handbook/internal/plugin"
	"git.home.luguber.info/inful/handbook/internal/plugin/publish"
	"git.home.luguber.info/inful/handbook/internal/plugin/routes"
	"git.home.luguber.info/inful/handbook/internal/query"
	"git.home.luguber.info/inful/handbook/internal/route"
	"github.com/google/uuid"
)

// Stage names used in logs and metrics.
const (
	StageDiscover    = "discover"
	StageCreateNodes = "create_nodes"
	StageCreatePages = "create_pages"
	StagePostBuild   = "post_build"
)

// Status is the final state of a build.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Options modify a single run.
type Options struct {
	// DryRun skips post-build plugins and the ledger.
	DryRun bool
}

// Result describes a finished build.
type Result struct {
	BuildID   string
	Status    Status
	Chapters  int
	Pages     []pages.Page
	Redirects []pages.Redirect
	// Routes is the classified route table, including language display names.
	Routes    []route.Metadata
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Builder orchestrates plugins over the discovered content.
type Builder struct {
	cfg      *config.Config
	registry *plugin.Registry
	recorder metrics.Recorder
	ledger   *ledger.Ledger
	logger   *slog.Logger
	newID    func() string
}

// DefaultRegistry returns a registry with the routes and publish plugins.
func DefaultRegistry() *plugin.Registry {
	r := plugin.NewRegistry()
	// Built-in plugins have static, valid metadata.
	_ = r.Register(routes.New())
	_ = r.Register(publish.New())
	return r
}

// NewBuilder creates a Builder with the default plugins and no metrics.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		cfg:      cfg,
		registry: DefaultRegistry(),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
}

// WithRegistry replaces the plugin registry.
func (b *Builder) WithRegistry(r *plugin.Registry) *Builder {
	b.registry = r
	return b
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	b.recorder = r
	return b
}

// WithLedger records every non-dry build in l.
func (b *Builder) WithLedger(l *ledger.Ledger) *Builder {
	b.ledger = l
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Run executes one full build. Any plugin error aborts the build.
func (b *Builder) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{BuildID: b.newID(), StartTime: start, Status: StatusFailed}
	logger := b.logger.With(logfields.BuildID(res.BuildID))

	err := b.run(ctx, opts, res, logger)

	res.EndTime = time.Now()
	res.Duration = res.EndTime.Sub(start)
	switch {
	case err == nil:
		res.Status = StatusSuccess
		b.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		res.Status = StatusCanceled
		b.recorder.IncBuildOutcome(metrics.OutcomeCanceled)
	default:
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
	}
	b.recorder.ObserveBuildDuration(res.Duration)

	if err != nil {
		logger.Error("Build failed", logfields.Error(err), logfields.DurationMS(float64(res.Duration.Milliseconds())))
		return res, err
	}
	logger.Info("Build completed",
		slog.Int("chapters", res.Chapters),
		slog.Int("pages", len(res.Pages)),
		slog.Int("redirects", len(res.Redirects)),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return res, nil
}

func (b *Builder) run(ctx context.Context, opts Options, res *Result, logger *slog.Logger) (err error) {
	if b.cfg == nil {
		return ferrors.ConfigError("config required").Build()
	}
	for _, p := range b.registry.List() {
		if err := p.Validate(b.cfg); err != nil {
			return plugin.NewPluginError(p.Metadata().Name, "Validate", err)
		}
	}

	graph := content.NewGraph()
	if err := b.stage(StageDiscover, logger, func() error {
		nodes, err := content.NewDiscovery(b.cfg.Content.BasePath).Discover(ctx)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryContent, "content discovery failed").
				WithContext("path", b.cfg.Content.BasePath).Fatal().Build()
		}
		for _, n := range nodes {
			graph.Add(n)
		}
		return nil
	}); err != nil {
		return err
	}
	res.Chapters = graph.Len()
	b.recorder.AddChapters(res.Chapters)

	emitted := pages.NewRecorder()
	sinks := []pages.Actions{emitted, countingActions{b.recorder}}
	if b.ledger != nil && !opts.DryRun {
		session, err := b.ledger.Begin(ctx, res.BuildID, b.cfg.Site.DefaultTranslation)
		if err != nil {
			return err
		}
		sinks = append(sinks, session)
		defer func() {
			status := ledger.StatusSuccess
			if err != nil {
				status = ledger.StatusFailed
			}
			if ferr := b.ledger.Finish(context.WithoutCancel(ctx), res.BuildID, status); ferr != nil {
				logger.Warn("Failed to finish ledger entry", logfields.Error(ferr))
			}
		}()
	}
	pc := plugin.NewPluginContext(b.logger, b.cfg, res.BuildID, graph, pages.Multi(sinks...), emitted)

	if err := b.stage(StageCreateNodes, logger, func() error {
		return b.createNodes(ctx, pc)
	}); err != nil {
		return err
	}
	res.Routes, err = query.AllPages(graph)
	if err != nil {
		return err
	}

	if err := b.stage(StageCreatePages, logger, func() error {
		for _, p := range b.registry.PageCreators() {
			if err := p.CreatePages(ctx, pc.For(p)); err != nil {
				return plugin.NewPluginError(p.Metadata().Name, "CreatePages", err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	res.Pages = emitted.Pages()
	res.Redirects = emitted.Redirects()

	if opts.DryRun {
		return nil
	}
	return b.stage(StagePostBuild, logger, func() error {
		for _, p := range b.registry.PostBuilders() {
			if err := p.OnPostBuild(ctx, pc.For(p)); err != nil {
				return plugin.NewPluginError(p.Metadata().Name, "OnPostBuild", err)
			}
		}
		return nil
	})
}

// createNodes runs every NodeCreator on every node. The first error stops
// the build.
func (b *Builder) createNodes(ctx context.Context, pc *plugin.PluginContext) error {
	creators := b.registry.NodeCreators()
	for _, n := range pc.Graph.Nodes() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, p := range creators {
			if err := p.OnCreateNode(ctx, pc.For(p), n); err != nil {
				return plugin.NewPluginError(p.Metadata().Name, "OnCreateNode", err)
			}
		}
	}
	return nil
}

func (b *Builder) stage(name string, logger *slog.Logger, fn func() error) error {
	start := time.Now()
	logger.Debug("Stage started", logfields.Stage(name))
	err := fn()
	d := time.Since(start)
	b.recorder.ObserveStageDuration(name, d)
	if err == nil {
		logger.Debug("Stage completed", logfields.Stage(name), logfields.DurationMS(float64(d.Milliseconds())))
	}
	return err
}

// countingActions feeds emitted commands into the metrics recorder.
type countingActions struct {
	recorder metrics.Recorder
}

func (c countingActions) CreatePage(p pages.Page) error {
	c.recorder.IncPageCreated(p.Context.Language)
	return nil
}

func (c countingActions) CreateRedirect(pages.Redirect) error {
	c.recorder.IncRedirectCreated()
	return nil
}
