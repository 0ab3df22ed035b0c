package mock

import (
	"context"

	"github.com/fwojciec/mdclip"
)

var _ mdclip.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of mdclip.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*mdclip.RenderedPage, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*mdclip.RenderedPage, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
