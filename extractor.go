package mdclip

import "context"

// Extractor finds the readable content and metadata of a rendered page.
type Extractor interface {
	// Extract returns the content region, title, author, publication date
	// and up to MaxImages sampled images. pageURL is used to resolve
	// relative image sources, to select per-domain content selectors and
	// as the last resort for the publication date.
	Extract(ctx context.Context, html string, pageURL string) (*PageContent, error)
}

// ImageSampler loads an image and re-encodes it for the enrichment service.
type ImageSampler interface {
	// Sample returns an error if the image cannot be loaded or decoded,
	// or is smaller than MinImageSize in either dimension.
	Sample(ctx context.Context, src, alt string) (*ImageSample, error)
}
