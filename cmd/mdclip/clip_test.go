package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/mdclip"
	main "github.com/fwojciec/mdclip/cmd/mdclip"
	"github.com/fwojciec/mdclip/mock"
	"github.com/fwojciec/mdclip/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clipFixture holds a Dependencies value wired to mocks for the clip command.
type clipFixture struct {
	deps     *main.Dependencies
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	settings *mdclip.Settings
	entry    *mdclip.HistoryEntry
	fetched  []string
	recorded []string
	enriched bool
}

func newClipFixture(t *testing.T) *clipFixture {
	t.Helper()

	f := &clipFixture{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		settings: &mdclip.Settings{Model: mdclip.DefaultModel},
	}

	history := &mock.HistoryService{
		FindEntryFn: func(_ context.Context, url string) (*mdclip.HistoryEntry, error) {
			if f.entry != nil && f.entry.URL == url {
				return f.entry, nil
			}
			return nil, mdclip.Errorf(mdclip.ENOTFOUND, "not found")
		},
		RecordFn: func(_ context.Context, url string) (*mdclip.HistoryEntry, error) {
			f.recorded = append(f.recorded, url)
			return &mdclip.HistoryEntry{URL: url, Count: 1}, nil
		},
	}

	p := &pipeline.Pipeline{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*mdclip.RenderedPage, error) {
				f.fetched = append(f.fetched, url)
				return &mdclip.RenderedPage{URL: url, HTML: "<main><p>Hi</p></main>"}, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(_ context.Context, _, _ string) (*mdclip.PageContent, error) {
				return &mdclip.PageContent{Title: "Kubernetes Basics", HTML: "<p>Hi</p>"}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(_ string) (string, error) { return "Hi\n", nil },
		},
		Enricher: &mock.Enricher{
			EnrichFn: func(_ context.Context, _ mdclip.EnrichRequest) (*mdclip.Enrichment, error) {
				f.enriched = true
				return &mdclip.Enrichment{Tags: []string{"k8s"}}, nil
			},
		},
		History: history,
		Saver: &mock.Saver{
			SaveFn: func(_ context.Context, _ []byte, name string) (string, error) {
				return "/out/" + name, nil
			},
		},
	}

	f.deps = &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: f.stdout,
		Stderr: f.stderr,
		Settings: &mock.SettingsService{
			LoadFn: func(_ context.Context) (*mdclip.Settings, error) {
				return f.settings, nil
			},
		},
		History:  history,
		Pipeline: p,
	}
	return f
}

// withWorker attaches a background worker to the fixture's pipeline.
func (f *clipFixture) withWorker(t *testing.T) {
	t.Helper()
	p := f.deps.Pipeline
	p.Worker = pipeline.NewWorker(context.Background(), pipeline.NewHandler(p, p.Enricher))
	t.Cleanup(func() { _ = p.Worker.Close() })
	f.deps.Worker = p.Worker
}

func TestClipCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves the page and reports the path", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		cmd := &main.ClipCmd{URL: "https://example.com/k8s"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Contains(t, f.stdout.String(), `Extracted "Kubernetes Basics" (devops, 3 B)`)
		assert.Contains(t, f.stdout.String(), "Saved /out/")
		assert.Equal(t, []string{"https://example.com/k8s"}, f.recorded)
		assert.False(t, f.enriched)
	})

	t.Run("prefixes failures with Error:", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		cmd := &main.ClipCmd{URL: "chrome://settings"}

		err := cmd.Run(f.deps)

		require.Error(t, err)
		assert.Equal(t, mdclip.EINVALIDTARGET, mdclip.ErrorCode(err))
		assert.Contains(t, f.stderr.String(), "Error: ")
		assert.Empty(t, f.fetched)
	})

	t.Run("reports pages extracted before", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		f.entry = &mdclip.HistoryEntry{
			URL:           "https://example.com/k8s",
			Count:         3,
			LastExtracted: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		}
		cmd := &main.ClipCmd{URL: "https://example.com/k8s"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Contains(t, f.stdout.String(), "Already extracted 3 times")
		assert.Len(t, f.fetched, 1)
	})

	t.Run("skips pages extracted before with --skip-existing", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		f.entry = &mdclip.HistoryEntry{URL: "https://example.com/k8s", Count: 1}
		cmd := &main.ClipCmd{URL: "https://example.com/k8s", SkipExisting: true}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Contains(t, f.stdout.String(), "Already extracted once")
		assert.Empty(t, f.fetched)
	})

	t.Run("enriches in the background when enabled", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		f.withWorker(t)
		f.settings.EnrichmentEnabled = true
		f.settings.APIKey = "key"
		cmd := &main.ClipCmd{URL: "https://example.com/k8s"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.True(t, f.enriched)
		assert.Contains(t, f.stdout.String(), "Enriching with "+mdclip.DefaultModel)
		assert.Contains(t, f.stdout.String(), "Saved /out/")
	})

	t.Run("warns when background enrichment fails", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		f.deps.Pipeline.Enricher = &mock.Enricher{
			EnrichFn: func(_ context.Context, _ mdclip.EnrichRequest) (*mdclip.Enrichment, error) {
				return nil, mdclip.Errorf(mdclip.EREMOTE, "service unavailable")
			},
		}
		f.withWorker(t)
		f.settings.EnrichmentEnabled = true
		f.settings.APIKey = "key"
		cmd := &main.ClipCmd{URL: "https://example.com/k8s"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Contains(t, f.stderr.String(), "Warning: enrichment failed, saved without it")
		assert.Contains(t, f.stdout.String(), "Saved /out/")
		assert.Equal(t, []string{"https://example.com/k8s"}, f.recorded)
	})

	t.Run("reports background save failures", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		f.deps.Pipeline.Saver = &mock.Saver{
			SaveFn: func(_ context.Context, _ []byte, _ string) (string, error) {
				return "", mdclip.Errorf(mdclip.EINVALID, "save cancelled")
			},
		}
		f.withWorker(t)
		f.settings.EnrichmentEnabled = true
		f.settings.APIKey = "key"
		cmd := &main.ClipCmd{URL: "https://example.com/k8s"}

		err := cmd.Run(f.deps)

		require.Error(t, err)
		assert.Contains(t, f.stderr.String(), "Error: save cancelled")
		assert.NotContains(t, f.stdout.String(), "Saved")
		assert.Empty(t, f.recorded)
	})

	t.Run("uses the API key from the environment", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		f.withWorker(t)
		f.deps.EnvAPIKey = "env-key"
		cmd := &main.ClipCmd{URL: "https://example.com/k8s", Enrich: true}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.True(t, f.enriched)
	})

	t.Run("--no-enrich overrides settings", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		f.withWorker(t)
		f.settings.EnrichmentEnabled = true
		f.settings.APIKey = "key"
		cmd := &main.ClipCmd{URL: "https://example.com/k8s", NoEnrich: true}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.False(t, f.enriched)
	})

	t.Run("warns when --enrich has no API key", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		cmd := &main.ClipCmd{URL: "https://example.com/k8s", Enrich: true}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Contains(t, f.stderr.String(), "no Gemini API key configured")
		assert.False(t, f.enriched)
	})

	t.Run("rejects unknown models", func(t *testing.T) {
		t.Parallel()

		f := newClipFixture(t)
		cmd := &main.ClipCmd{URL: "https://example.com/k8s", Model: "gpt-4"}

		err := cmd.Run(f.deps)

		require.Error(t, err)
		assert.Contains(t, f.stderr.String(), `Error: unknown model "gpt-4"`)
		assert.Empty(t, f.fetched)
	})
}

func TestEnrichCmd_Run(t *testing.T) {
	t.Parallel()

	newDeps := func(t *testing.T, enricher mdclip.Enricher, stdout, stderr *bytes.Buffer) *main.Dependencies {
		t.Helper()
		p := &pipeline.Pipeline{Enricher: enricher}
		w := pipeline.NewWorker(context.Background(), pipeline.NewHandler(p, enricher))
		t.Cleanup(func() { _ = w.Close() })
		return &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Settings: &mock.SettingsService{
				LoadFn: func(_ context.Context) (*mdclip.Settings, error) {
					return &mdclip.Settings{APIKey: "stored", Model: mdclip.DefaultModel}, nil
				},
			},
			Worker: w,
		}
	}

	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "post.md")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("prints the enrichment", func(t *testing.T) {
		t.Parallel()

		var got mdclip.EnrichRequest
		enricher := &mock.Enricher{
			EnrichFn: func(_ context.Context, req mdclip.EnrichRequest) (*mdclip.Enrichment, error) {
				got = req
				return &mdclip.Enrichment{
					Tags:            []string{"go", "testing"},
					DifficultyLevel: mdclip.DifficultyAdvanced,
					Summary:         "About tests.",
					Content:         "# Revised\n",
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := newDeps(t, enricher, stdout, &bytes.Buffer{})
		cmd := &main.EnrichCmd{File: writeFile(t, "# Post\n"), Model: "gemini-2.5-pro", Body: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "# Post\n", got.Markdown)
		assert.Equal(t, "stored", got.APIKey)
		assert.Equal(t, "gemini-2.5-pro", got.Model)
		assert.Contains(t, stdout.String(), "Tags:          go, testing\n")
		assert.Contains(t, stdout.String(), "Difficulty:    advanced\n")
		assert.Contains(t, stdout.String(), "About tests.")
		assert.Contains(t, stdout.String(), "# Revised\n")
	})

	t.Run("rejects unknown models before calling the service", func(t *testing.T) {
		t.Parallel()

		called := false
		enricher := &mock.Enricher{
			EnrichFn: func(_ context.Context, _ mdclip.EnrichRequest) (*mdclip.Enrichment, error) {
				called = true
				return &mdclip.Enrichment{}, nil
			},
		}
		stderr := &bytes.Buffer{}
		deps := newDeps(t, enricher, &bytes.Buffer{}, stderr)
		cmd := &main.EnrichCmd{File: writeFile(t, "# Post\n"), Model: "gpt-4"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, mdclip.EINVALID, mdclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), `Error: unknown model "gpt-4"`)
		assert.False(t, called)
	})

	t.Run("hints at configuration when the key is missing", func(t *testing.T) {
		t.Parallel()

		enricher := &mock.Enricher{
			EnrichFn: func(_ context.Context, _ mdclip.EnrichRequest) (*mdclip.Enrichment, error) {
				return nil, mdclip.Errorf(mdclip.ECONFIG, "Gemini API key not configured")
			},
		}
		stderr := &bytes.Buffer{}
		deps := newDeps(t, enricher, &bytes.Buffer{}, stderr)
		cmd := &main.EnrichCmd{File: writeFile(t, "# Post\n")}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Hint: Set GEMINI_API_KEY")
		assert.Contains(t, stderr.String(), "Error: Gemini API key not configured")
	})
}
