package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"git.home.luguber.info/inful/handbook/internal/build"
	"git.home.luguber.info/inful/handbook/internal/config"
	"git.home.luguber.info/inful/handbook/internal/route"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct{}

func (r *RoutesCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	res, err := build.NewBuilder(cfg).WithLogger(g.logger()).Run(g.context(), build.Options{DryRun: true})
	if err != nil {
		return err
	}
	return writeRouteTable(g.out(), res.Routes)
}

// writeRouteTable prints one row per route. An unknown language name is
// printed as "-".
func writeRouteTable(w io.Writer, routes []route.Metadata) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "GUIDE\tFRAMEWORK\tLANGUAGE\tNAME\tCHAPTER\tSLUG")
	for _, m := range routes {
		name := "-"
		if m.HasLanguageName {
			name = m.LanguageName
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Guide, m.Framework, m.Language, name, m.Chapter, m.Slug)
	}
	return tw.Flush()
}
