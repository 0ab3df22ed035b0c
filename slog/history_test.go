package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/mock"
	mdslog "github.com/fwojciec/mdclip/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingHistoryService(t *testing.T) {
	t.Parallel()

	t.Run("logs record with count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.HistoryService{
			RecordFn: func(_ context.Context, url string) (*mdclip.HistoryEntry, error) {
				return &mdclip.HistoryEntry{URL: url, Count: 3}, nil
			},
		}

		svc := mdslog.NewLoggingHistoryService(inner, logger)
		entry, err := svc.Record(context.Background(), "https://x.test/a")

		require.NoError(t, err)
		assert.Equal(t, 3, entry.Count)
		output := buf.String()
		assert.Contains(t, output, "history record")
		assert.Contains(t, output, "count=3")
	})

	t.Run("delegates reads without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.HistoryService{
			ContainsFn: func(context.Context, string) (bool, error) { return true, nil },
		}

		svc := mdslog.NewLoggingHistoryService(inner, logger)
		found, err := svc.Contains(context.Background(), "https://x.test/a")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Empty(t, buf.String())
	})

	t.Run("logs trim size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.HistoryService{
			TrimFn: func(context.Context, int) error { return nil },
		}

		svc := mdslog.NewLoggingHistoryService(inner, logger)
		require.NoError(t, svc.Trim(context.Background(), 7))

		assert.Contains(t, buf.String(), "n=7")
	})

	t.Run("logs failed clears at warn", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.HistoryService{
			ClearFn: func(context.Context) error { return errors.New("database is locked") },
		}

		svc := mdslog.NewLoggingHistoryService(inner, logger)
		require.Error(t, svc.Clear(context.Background()))

		output := buf.String()
		assert.Contains(t, output, "level=WARN msg=\"history clear\"")
		assert.Contains(t, output, "err=\"database is locked\"")
	})
}
