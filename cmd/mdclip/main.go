package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/bubbletea"
	"github.com/fwojciec/mdclip/fs"
	"github.com/fwojciec/mdclip/gemini"
	"github.com/fwojciec/mdclip/goquery"
	"github.com/fwojciec/mdclip/htmltomarkdown"
	mdhttp "github.com/fwojciec/mdclip/http"
	"github.com/fwojciec/mdclip/pipeline"
	"github.com/fwojciec/mdclip/rod"
	mdslog "github.com/fwojciec/mdclip/slog"
	"github.com/fwojciec/mdclip/sqlite"
	"github.com/fwojciec/mdclip/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database and settings paths. Set before calling Run().
	DBPath     string
	ConfigPath string

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Settings mdclip.SettingsService
	History  mdclip.HistoryService

	fetcher mdclip.Fetcher
	worker  *pipeline.Worker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultPath("MDCLIP_DB", "history.db"),
		ConfigPath: defaultPath("MDCLIP_CONFIG", "config.yaml"),
		Getenv:     os.Getenv,
	}
}

// Close drains background work, then releases the browser and database.
func (m *Main) Close() error {
	var errs []error
	if m.worker != nil {
		errs = append(errs, m.worker.Close())
	}
	if m.fetcher != nil {
		errs = append(errs, m.fetcher.Close())
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mdclip"),
		kong.Description("Save the readable content of a web page as Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		fmt.Fprintln(stderr, "Error: no command specified. Run 'mdclip --help' to see available commands")
		return mdclip.Errorf(mdclip.EINVALID, "no command specified")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		EnvAPIKey: m.getenv("GEMINI_API_KEY"),
	}

	if m.Settings == nil {
		m.Settings = yaml.NewSettingsService(m.ConfigPath)
	}
	deps.Settings = m.Settings

	if m.History == nil {
		if err := os.MkdirAll(filepath.Dir(m.DBPath), 0755); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return err
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MDCLIP_DB to use a different database path\n")
			fmt.Fprintf(stderr, "Error: failed to open database at %q: %s\n", m.DBPath, err)
			return err
		}
		m.History = mdslog.NewLoggingHistoryService(sqlite.NewHistoryService(m.DB), logger)
	}
	defer m.Close()
	deps.History = m.History

	// Wire command-specific dependencies based on command
	switch kongCtx.Command() {
	case "clip <url>":
		if err := m.wireClip(ctx, deps, &cli.Clip, stdin); err != nil {
			return err
		}
	case "enrich <file>":
		m.wireEnrich(ctx, deps)
	}

	return kongCtx.Run(deps)
}

// wireClip builds the extraction pipeline and its background worker.
func (m *Main) wireClip(ctx context.Context, deps *Dependencies, c *ClipCmd, stdin io.Reader) error {
	if m.fetcher == nil {
		fetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			fmt.Fprintf(deps.Stderr, "Error: failed to start browser: %s\n", err)
			return err
		}
		m.fetcher = mdslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	saver := &fs.Saver{
		Settings:  m.Settings,
		Dir:       c.Dir,
		Overwrite: c.Force,
	}
	if !c.NoPrompt {
		saver.Prompter = bubbletea.NewPrompter(stdin, deps.Stderr)
	}

	extractor := goquery.NewExtractor(goquery.NewRegistry(), mdhttp.NewImageSampler())

	p := &pipeline.Pipeline{
		Fetcher:   m.fetcher,
		Extractor: mdslog.NewLoggingExtractor(extractor, deps.Logger),
		Converter: htmltomarkdown.NewConverter(),
		Enricher:  newEnricher(deps.Logger),
		History:   m.History,
		Saver:     saver,
		Logger:    deps.Logger,
		OnState: func(runID string, s pipeline.State) {
			deps.Logger.Debug("state", "run", runID, "state", s.String())
		},
	}
	p.Worker = m.startWorker(ctx, p, deps)

	deps.Pipeline = p
	deps.Worker = p.Worker
	return nil
}

// wireEnrich starts a worker that only serves enrichment requests.
func (m *Main) wireEnrich(ctx context.Context, deps *Dependencies) {
	p := &pipeline.Pipeline{
		Enricher: newEnricher(deps.Logger),
		Logger:   deps.Logger,
	}
	deps.Pipeline = p
	deps.Worker = m.startWorker(ctx, p, deps)
}

func (m *Main) startWorker(ctx context.Context, p *pipeline.Pipeline, deps *Dependencies) *pipeline.Worker {
	notifier := mdslog.NewNotifier(slog.New(slog.NewTextHandler(deps.Stderr, nil)))
	m.worker = pipeline.NewWorker(ctx, pipeline.NewHandler(p, p.Enricher),
		pipeline.WithNotifier(notifier),
		pipeline.WithLogger(deps.Logger),
	)
	return m.worker
}

func newEnricher(logger *slog.Logger) mdclip.Enricher {
	policy := gemini.DefaultRetryPolicy()
	policy.Logger = logger
	return mdslog.NewLoggingEnricher(gemini.NewEnricher(gemini.WithRetryPolicy(policy)), logger)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (m *Main) getenv(key string) string {
	if m.Getenv == nil {
		return os.Getenv(key)
	}
	return m.Getenv(key)
}

// defaultPath returns the value of env, or name inside ~/.mdclip.
func defaultPath(env, name string) string {
	if path := os.Getenv(env); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".mdclip", name)
}
