// Package slog provides logging decorators for mdclip services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdclip"
)

// Ensure LoggingFetcher implements mdclip.Fetcher.
var _ mdclip.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Failed renders are logged
// at Warn, successful ones at Info.
type LoggingFetcher struct {
	next   mdclip.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mdclip.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the rendered size and
// any redirect.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *mdclip.RenderedPage, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if err != nil {
			f.logger.Warn("render", append(attrs, "err", err)...)
			return
		}
		attrs = append(attrs, "bytes", len(page.HTML))
		if page.URL != "" && page.URL != url {
			attrs = append(attrs, "redirected_to", page.URL)
		}
		f.logger.Info("render", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher and logs the shutdown.
func (f *LoggingFetcher) Close() error {
	err := f.next.Close()
	f.logger.Debug("browser closed", "err", err)
	return err
}
