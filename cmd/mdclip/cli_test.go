package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/mdclip/cmd/mdclip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"clip", "enrich", "history", "config", "models"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesClipFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"clip", "https://example.com", "--no-enrich", "-m", "gemini-2.5-pro", "--skip-existing"})

	require.NoError(t, err)
	assert.Equal(t, "clip <url>", kctx.Command())
	assert.Equal(t, "https://example.com", cli.Clip.URL)
	assert.True(t, cli.Clip.NoEnrich)
	assert.Equal(t, "gemini-2.5-pro", cli.Clip.Model)
	assert.True(t, cli.Clip.SkipExisting)
}

func TestCLI_RejectsConflictingEnrichFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"clip", "https://example.com", "--enrich", "--no-enrich"})

	assert.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, &bytes.Buffer{}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:", "Help should have Kong-style Usage prefix")
	assert.Contains(t, helpOutput, "Flags:", "Help should have Kong-style Flags section")
}

// newTestMain returns a Main using files under a temporary directory and
// an empty environment.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()

	dir := t.TempDir()
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "history.db")
	m.ConfigPath = filepath.Join(dir, "config.yaml")
	m.Getenv = func(string) string { return "" }
	return m
}
