package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdclip"
)

// Ensure LoggingEnricher implements mdclip.Enricher.
var _ mdclip.Enricher = (*LoggingEnricher)(nil)

// LoggingEnricher wraps an Enricher with debug logging. The API key is
// never logged.
type LoggingEnricher struct {
	next   mdclip.Enricher
	logger *slog.Logger
}

// NewLoggingEnricher creates a new LoggingEnricher.
func NewLoggingEnricher(next mdclip.Enricher, logger *slog.Logger) *LoggingEnricher {
	return &LoggingEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the outcome.
func (e *LoggingEnricher) Enrich(ctx context.Context, req mdclip.EnrichRequest) (result *mdclip.Enrichment, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"model", req.Model,
			"bytes", len(req.Markdown),
			"images", len(req.Images),
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"tags", len(result.Tags),
				"difficulty", result.DifficultyLevel,
				"content_bytes", len(result.Content),
			)
		}
		if err != nil {
			e.logger.Warn("enrich", append(attrs, "err", err)...)
			return
		}
		e.logger.Info("enrich", attrs...)
	}(time.Now())
	return e.next.Enrich(ctx, req)
}
