package mdclip

import "context"

// RenderedPage is the live DOM of a page after scripts have run.
type RenderedPage struct {
	// URL is the address after redirects.
	URL  string
	HTML string
}

// Fetcher renders pages in a browser.
type Fetcher interface {
	// Fetch navigates to the URL, waits for JavaScript to render,
	// and returns the serialized live DOM.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*RenderedPage, error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
