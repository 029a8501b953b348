package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"git.home.luguber.info/inful/handbook/internal/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	dir  string
	root *CLI
	g    *Global
	out  *bytes.Buffer
}

func newCLIEnv(t *testing.T, extraConfig string, chapters ...string) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	for _, rel := range chapters {
		p := filepath.Join(dir, "content", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("# Chapter\n"), 0o600))
	}
	cfgPath := filepath.Join(dir, "handbook.yaml")
	cfg := "site:\n  default_translation: react/en\n" +
		"content:\n  base_path: " + filepath.Join(dir, "content") + "\n" +
		"output:\n  directory: " + filepath.Join(dir, "public") + "\n" + extraConfig
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	out := &bytes.Buffer{}
	return &cliEnv{
		dir:  dir,
		root: &CLI{Config: cfgPath},
		g:    &Global{Ctx: context.Background(), Out: out, Logger: slog.New(slog.DiscardHandler)},
		out:  out,
	}
}

func TestBuildCmd(t *testing.T) {
	env := newCLIEnv(t, "",
		"get-started/react/en/introduction.md",
		"get-started/react/es/introduction.md",
	)
	require.NoError(t, (&BuildCmd{}).Run(env.g, env.root))
	assert.Contains(t, env.out.String(), "Built 2 chapters: 2 pages, 1 redirects")
	assert.FileExists(t, filepath.Join(env.dir, "public", "routes.json"))
	assert.FileExists(t, filepath.Join(env.dir, "public", "_redirects"))
}

func TestBuildCmd_OutputOverride(t *testing.T) {
	env := newCLIEnv(t, "", "get-started/react/en/introduction.md")
	out := filepath.Join(env.dir, "elsewhere")
	require.NoError(t, (&BuildCmd{Output: out}).Run(env.g, env.root))
	assert.FileExists(t, filepath.Join(out, "routes.json"))
	assert.NoDirExists(t, filepath.Join(env.dir, "public"))
}

func TestBuildCmd_LedgerAndMetrics(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "ledger.db")
	metricsPath := filepath.Join(dir, "handbook.prom")
	env := newCLIEnv(t,
		"ledger:\n  path: "+ledgerPath+"\nmetrics:\n  textfile: "+metricsPath+"\n",
		"get-started/react/en/introduction.md",
	)
	require.NoError(t, (&BuildCmd{}).Run(env.g, env.root))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "handbook_pages_created_total")

	assert.FileExists(t, ledgerPath)
}

func TestBuildCmd_MalformedPathExitCode(t *testing.T) {
	env := newCLIEnv(t, "", "get-started/react/introduction.md")
	err := (&BuildCmd{}).Run(env.g, env.root)
	require.Error(t, err)
	assert.ErrorIs(t, err, route.ErrMalformedPath)
	assert.Equal(t, 2, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuildCmd_MissingConfig(t *testing.T) {
	env := newCLIEnv(t, "")
	env.root.Config = filepath.Join(env.dir, "nope.yaml")
	err := (&BuildCmd{}).Run(env.g, env.root)
	require.Error(t, err)
	assert.Equal(t, 7, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestRoutesCmd(t *testing.T) {
	env := newCLIEnv(t, "",
		"get-started/react/en/introduction.md",
		"get-started/vue/fr/introduction.md",
	)
	require.NoError(t, (&RoutesCmd{}).Run(env.g, env.root))

	lines := strings.Split(strings.TrimSpace(env.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"GUIDE", "FRAMEWORK", "LANGUAGE", "NAME", "CHAPTER", "SLUG"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"get-started", "react", "en", "English", "introduction", "/get-started/react/en/introduction/"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"get-started", "vue", "fr", "-", "introduction", "/get-started/vue/fr/introduction/"}, strings.Fields(lines[2]))
	assert.NoDirExists(t, filepath.Join(env.dir, "public"))
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	root := &CLI{Config: filepath.Join(dir, "handbook.yaml")}
	g := &Global{Out: &bytes.Buffer{}}

	require.NoError(t, (&InitCmd{}).Run(g, root))
	assert.FileExists(t, root.Config)

	err := (&InitCmd{}).Run(g, root)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, (&InitCmd{Force: true}).Run(g, root))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		env     string
		verbose bool
		want    slog.Level
	}{
		{"", false, slog.LevelInfo},
		{"", true, slog.LevelDebug},
		{"DEBUG", false, slog.LevelDebug},
		{"warn", false, slog.LevelWarn},
		{"error", true, slog.LevelDebug},
		{"bogus", false, slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(LogLevelEnv, tt.env)
			assert.Equal(t, tt.want, parseLogLevel(tt.verbose))
		})
	}
}
