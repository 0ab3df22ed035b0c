package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdclip"
)

// Ensure LoggingHistoryService implements mdclip.HistoryService.
var _ mdclip.HistoryService = (*LoggingHistoryService)(nil)

// LoggingHistoryService wraps a HistoryService with debug logging of writes.
type LoggingHistoryService struct {
	next   mdclip.HistoryService
	logger *slog.Logger
}

// NewLoggingHistoryService creates a new LoggingHistoryService.
func NewLoggingHistoryService(next mdclip.HistoryService, logger *slog.Logger) *LoggingHistoryService {
	return &LoggingHistoryService{next: next, logger: logger}
}

// Record delegates to the wrapped service and logs the new count.
func (s *LoggingHistoryService) Record(ctx context.Context, url string) (entry *mdclip.HistoryEntry, err error) {
	defer func(begin time.Time) {
		var count int
		if entry != nil {
			count = entry.Count
		}
		s.log("history record", err, "url", url, "count", count, "duration", time.Since(begin))
	}(time.Now())
	return s.next.Record(ctx, url)
}

// Contains delegates to the wrapped service.
func (s *LoggingHistoryService) Contains(ctx context.Context, url string) (bool, error) {
	return s.next.Contains(ctx, url)
}

// FindEntry delegates to the wrapped service.
func (s *LoggingHistoryService) FindEntry(ctx context.Context, url string) (*mdclip.HistoryEntry, error) {
	return s.next.FindEntry(ctx, url)
}

// List delegates to the wrapped service.
func (s *LoggingHistoryService) List(ctx context.Context) ([]*mdclip.HistoryEntry, error) {
	return s.next.List(ctx)
}

// Clear delegates to the wrapped service and logs the operation.
func (s *LoggingHistoryService) Clear(ctx context.Context) (err error) {
	defer func() {
		s.log("history clear", err)
	}()
	return s.next.Clear(ctx)
}

// Trim delegates to the wrapped service and logs the operation.
func (s *LoggingHistoryService) Trim(ctx context.Context, n int) (err error) {
	defer func() {
		s.log("history trim", err, "n", n)
	}()
	return s.next.Trim(ctx, n)
}

func (s *LoggingHistoryService) log(msg string, err error, attrs ...any) {
	if err != nil {
		s.logger.Warn(msg, append(attrs, "err", err)...)
		return
	}
	s.logger.Info(msg, attrs...)
}
