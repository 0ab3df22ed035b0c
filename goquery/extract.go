// Package goquery extracts readable content and metadata from rendered
// HTML using goquery.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdclip"
)

// Ensure Extractor implements mdclip.Extractor at compile time.
var _ mdclip.Extractor = (*Extractor)(nil)

// landmarkSelectors are tried when no domain selector matches.
var landmarkSelectors = []string{"main", "article", `[role="main"]`}

// chromeSelectors are removed from the content region before it is serialized.
var chromeSelectors = "script, style, noscript, template, nav, aside, footer, [role='navigation']"

// Extractor extracts the content region, metadata and images of a page.
type Extractor struct {
	registry *Registry
	sampler  mdclip.ImageSampler
}

// NewExtractor creates a new Extractor. The sampler may be nil, in which
// case no images are sampled.
func NewExtractor(registry *Registry, sampler mdclip.ImageSampler) *Extractor {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Extractor{registry: registry, sampler: sampler}
}

// Extract parses html and returns the page content.
// A page without content markup yields an empty HTML field, not an error.
func (e *Extractor) Extract(ctx context.Context, html string, pageURL string) (*mdclip.PageContent, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, mdclip.Errorf(mdclip.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mdclip.Errorf(mdclip.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &mdclip.PageContent{
		Title:           Title(doc),
		Author:          Author(doc),
		PublicationDate: PublicationDate(doc, base),
	}

	region := e.contentRegion(doc, base.Hostname())
	region.Find(chromeSelectors).Remove()

	inner, err := region.Html()
	if err != nil {
		return nil, err
	}
	page.HTML = strings.TrimSpace(inner)

	if e.sampler != nil {
		page.Images = sampleImages(ctx, e.sampler, imageCandidates(region, base))
	}

	return page, nil
}

// Title returns the document title with whitespace collapsed.
func Title(doc *goquery.Document) string {
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// contentRegion returns the domain override, the first landmark, or the body.
func (e *Extractor) contentRegion(doc *goquery.Document, host string) *goquery.Selection {
	if sel := e.registry.Get(host); sel != "" {
		if region := doc.Find(sel).First(); region.Length() > 0 {
			return region
		}
	}
	for _, sel := range landmarkSelectors {
		if region := doc.Find(sel).First(); region.Length() > 0 {
			return region
		}
	}
	return doc.Find("body").First()
}
