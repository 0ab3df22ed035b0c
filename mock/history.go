package mock

import (
	"context"

	"github.com/fwojciec/mdclip"
)

var _ mdclip.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of mdclip.HistoryService.
type HistoryService struct {
	RecordFn    func(ctx context.Context, url string) (*mdclip.HistoryEntry, error)
	ContainsFn  func(ctx context.Context, url string) (bool, error)
	FindEntryFn func(ctx context.Context, url string) (*mdclip.HistoryEntry, error)
	ListFn      func(ctx context.Context) ([]*mdclip.HistoryEntry, error)
	ClearFn     func(ctx context.Context) error
	TrimFn      func(ctx context.Context, n int) error
}

func (s *HistoryService) Record(ctx context.Context, url string) (*mdclip.HistoryEntry, error) {
	return s.RecordFn(ctx, url)
}

func (s *HistoryService) Contains(ctx context.Context, url string) (bool, error) {
	return s.ContainsFn(ctx, url)
}

func (s *HistoryService) FindEntry(ctx context.Context, url string) (*mdclip.HistoryEntry, error) {
	return s.FindEntryFn(ctx, url)
}

func (s *HistoryService) List(ctx context.Context) ([]*mdclip.HistoryEntry, error) {
	return s.ListFn(ctx)
}

func (s *HistoryService) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

func (s *HistoryService) Trim(ctx context.Context, n int) error {
	return s.TrimFn(ctx, n)
}
