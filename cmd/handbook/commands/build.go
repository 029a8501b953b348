package commands

import (
	"fmt"

	"git.home.luguber.info/inful/handbook/internal/build"
	"git.home.luguber.info/inful/handbook/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}

	s, err := openSession(cfg, g.logger())
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.builder.Run(g.context(), build.Options{})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Built %d chapters: %d pages, %d redirects -> %s\n",
		res.Chapters, len(res.Pages), len(res.Redirects), cfg.Output.Directory)
	return nil
}
