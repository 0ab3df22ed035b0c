package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/mdclip"
	main "github.com/fwojciec/mdclip/cmd/mdclip"
	"github.com/fwojciec/mdclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists entries with count and URL", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			ListFn: func(_ context.Context) ([]*mdclip.HistoryEntry, error) {
				return []*mdclip.HistoryEntry{
					{URL: "https://go.dev/blog/", Count: 2, LastExtracted: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
					{URL: "https://example.com/post", Count: 1, LastExtracted: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, History: history}

		err := (&main.HistoryListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "  2x  https://go.dev/blog/\n")
		assert.Contains(t, stdout.String(), "  1x  https://example.com/post\n")
	})

	t.Run("reports list errors", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			ListFn: func(_ context.Context) ([]*mdclip.HistoryEntry, error) {
				return nil, errors.New("disk I/O error")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, History: history}

		err := (&main.HistoryListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Error: disk I/O error")
	})
}

func TestHistoryCheckCmd_Run(t *testing.T) {
	t.Parallel()

	history := &mock.HistoryService{
		FindEntryFn: func(_ context.Context, url string) (*mdclip.HistoryEntry, error) {
			return &mdclip.HistoryEntry{URL: url, Count: 4}, nil
		},
	}
	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, History: history}

	err := (&main.HistoryCheckCmd{URL: "https://example.com"}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Extracted 4 times")
}

func TestHistoryTrimCmd_Run(t *testing.T) {
	t.Parallel()

	var kept int
	history := &mock.HistoryService{
		TrimFn: func(_ context.Context, n int) error {
			kept = n
			return nil
		},
	}
	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, History: history}

	err := (&main.HistoryTrimCmd{N: 10}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, 10, kept)
	assert.Contains(t, stdout.String(), "Kept the 10 most recent entries")
}

func TestHistoryClearCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("clears when --force is set", func(t *testing.T) {
		t.Parallel()

		var cleared bool
		history := &mock.HistoryService{
			ClearFn: func(_ context.Context) error {
				cleared = true
				return nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, History: history}

		err := (&main.HistoryClearCmd{Force: true}).Run(deps)

		require.NoError(t, err)
		assert.True(t, cleared)
		assert.Contains(t, stdout.String(), "History cleared")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, History: &mock.HistoryService{}}

		err := (&main.HistoryClearCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})
}
