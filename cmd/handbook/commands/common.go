package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/handbook/internal/build"
	"git.home.luguber.info/inful/handbook/internal/config"
	"git.home.luguber.info/inful/handbook/internal/ledger"
	"git.home.luguber.info/inful/handbook/internal/logfields"
	"git.home.luguber.info/inful/handbook/internal/metrics"
	"github.com/alecthomas/kong"
)

// LogLevelEnv overrides the log level when set (debug, info, warn, error).
const LogLevelEnv = "HANDBOOK_LOG_LEVEL"

// Global is shared state bound into every command.
type Global struct {
	Ctx    context.Context
	Out    io.Writer
	Logger *slog.Logger
}

func (g *Global) context() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI is the root command line.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"handbook.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Classify content and write routes.json and the redirects file"`
	Routes RoutesCmd `cmd:"" help:"Print the route table without writing anything"`
	Watch  WatchCmd  `cmd:"" help:"Build, then rebuild whenever content changes"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply(g *Global) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	g.Logger = logger
	return nil
}

// parseLogLevel gives -v precedence over HANDBOOK_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// session is a configured builder plus the resources it holds.
type session struct {
	builder *build.Builder
	ledger  *ledger.Ledger
	prom    *metrics.PrometheusRecorder
	cfg     *config.Config
	logger  *slog.Logger
}

// openSession wires the optional ledger and metrics recorder from cfg.
func openSession(cfg *config.Config, logger *slog.Logger) (*session, error) {
	s := &session{cfg: cfg, logger: logger, builder: build.NewBuilder(cfg).WithLogger(logger)}
	if cfg.Ledger.Path != "" {
		l, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return nil, err
		}
		s.ledger = l
		s.builder.WithLedger(l)
	}
	if cfg.Metrics.Textfile != "" {
		s.prom = metrics.NewPrometheusRecorder(nil)
		s.builder.WithRecorder(s.prom)
	}
	return s, nil
}

// flushMetrics writes the metrics textfile if one is configured.
func (s *session) flushMetrics() {
	if s.prom == nil {
		return
	}
	if err := s.prom.WriteTextfile(s.cfg.Metrics.Textfile); err != nil {
		s.logger.Warn("Failed to write metrics textfile", logfields.Path(s.cfg.Metrics.Textfile), logfields.Error(err))
	}
}

func (s *session) Close() {
	s.flushMetrics()
	if s.ledger != nil {
		if err := s.ledger.Close(); err != nil {
			s.logger.Warn("Failed to close ledger", logfields.Error(err))
		}
	}
}
