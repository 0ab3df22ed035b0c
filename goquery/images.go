package goquery

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdclip"
	"golang.org/x/sync/errgroup"
)

// imageCandidate is an <img> in the content region, in document order.
type imageCandidate struct {
	src string
	alt string
}

// imageCandidates returns the resolvable images of region whose declared
// size, if any, is at least mdclip.MinImageSize in both dimensions.
func imageCandidates(region *goquery.Selection, base *url.URL) []imageCandidate {
	var candidates []imageCandidate
	region.Find("img").Each(func(_ int, s *goquery.Selection) {
		if tooSmall(s.AttrOr("width", "")) || tooSmall(s.AttrOr("height", "")) {
			return
		}
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(s.AttrOr("data-src", ""))
		}
		if src == "" {
			return
		}
		resolved := resolveURL(base, src)
		if resolved == "" {
			return
		}
		candidates = append(candidates, imageCandidate{src: resolved, alt: s.AttrOr("alt", "")})
	})
	return candidates
}

// tooSmall reports whether a width or height attribute declares fewer
// pixels than mdclip.MinImageSize. Missing or non-numeric values are not.
func tooSmall(attr string) bool {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(attr), "px"))
	return err == nil && n < mdclip.MinImageSize
}

// sampleImages samples candidates in document order until mdclip.MaxImages
// succeed. Each window holds only as many candidates as samples are still
// needed, so no image past the last needed one is loaded. Failed images are
// dropped without retry.
func sampleImages(ctx context.Context, sampler mdclip.ImageSampler, candidates []imageCandidate) []mdclip.ImageSample {
	var samples []mdclip.ImageSample
	for len(candidates) > 0 && len(samples) < mdclip.MaxImages {
		if ctx.Err() != nil {
			break
		}

		window := candidates[:min(mdclip.MaxImages-len(samples), len(candidates))]
		candidates = candidates[len(window):]

		results := make([]*mdclip.ImageSample, len(window))
		var g errgroup.Group
		for i, c := range window {
			g.Go(func() error {
				sample, err := sampler.Sample(ctx, c.src, c.alt)
				if err == nil {
					results[i] = sample
				}
				return nil
			})
		}
		_ = g.Wait()

		for _, r := range results {
			if r != nil {
				samples = append(samples, *r)
			}
		}
	}
	return samples
}

// resolveURL resolves a possibly relative image source against the page URL.
// data: URIs are returned unchanged. Returns an empty string for
// unparseable or non-image schemes.
func resolveURL(base *url.URL, src string) string {
	if strings.HasPrefix(strings.ToLower(src), "data:image/") {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
