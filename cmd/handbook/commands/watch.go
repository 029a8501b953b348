package commands

import (
	"fmt"

	"git.home.luguber.info/inful/handbook/internal/build"
	"git.home.luguber.info/inful/handbook/internal/config"
	"git.home.luguber.info/inful/handbook/internal/logfields"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
	Debounce string `help:"Quiet period before rebuilding (overrides watch.debounce)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if w.Output != "" {
		cfg.Output.Directory = w.Output
	}
	if w.Debounce != "" {
		cfg.Watch.Debounce = w.Debounce
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	s, err := openSession(cfg, g.logger())
	if err != nil {
		return err
	}
	defer s.Close()

	logger := g.logger()
	logger.Info("Watching content", logfields.Path(cfg.Content.BasePath))
	return s.builder.Watch(g.context(), cfg.WatchDebounce(), func(res *build.Result, err error) {
		if err != nil {
			logger.Warn("Rebuild failed", logfields.Error(err))
			return
		}
		s.flushMetrics()
		_, _ = fmt.Fprintf(g.out(), "Built %d chapters: %d pages, %d redirects\n",
			res.Chapters, len(res.Pages), len(res.Redirects))
	})
}
