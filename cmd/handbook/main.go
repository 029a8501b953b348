// Command handbook classifies handbook chapters into routes and emits the
// page and redirect records the site renderer consumes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/handbook/cmd/handbook/commands"
	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"git.home.luguber.info/inful/handbook/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	global := &commands.Global{Ctx: ctx, Out: os.Stdout}
	parser := kong.Parse(cli,
		kong.Name("handbook"),
		kong.Description("Build routes, pages and redirects for a multi-language handbook."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := parser.Run(cli); err != nil {
		stop()
		ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
