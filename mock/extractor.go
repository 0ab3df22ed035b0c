package mock

import (
	"context"

	"github.com/fwojciec/mdclip"
)

var _ mdclip.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of mdclip.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, html, pageURL string) (*mdclip.PageContent, error)
}

func (e *Extractor) Extract(ctx context.Context, html, pageURL string) (*mdclip.PageContent, error) {
	return e.ExtractFn(ctx, html, pageURL)
}

var _ mdclip.ImageSampler = (*ImageSampler)(nil)

// ImageSampler is a mock implementation of mdclip.ImageSampler.
type ImageSampler struct {
	SampleFn func(ctx context.Context, src, alt string) (*mdclip.ImageSample, error)
}

func (s *ImageSampler) Sample(ctx context.Context, src, alt string) (*mdclip.ImageSample, error) {
	return s.SampleFn(ctx, src, alt)
}
