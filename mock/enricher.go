package mock

import (
	"context"

	"github.com/fwojciec/mdclip"
)

var _ mdclip.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of mdclip.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, req mdclip.EnrichRequest) (*mdclip.Enrichment, error)
}

func (e *Enricher) Enrich(ctx context.Context, req mdclip.EnrichRequest) (*mdclip.Enrichment, error) {
	return e.EnrichFn(ctx, req)
}
