package goquery

import (
	"slices"
	"strings"
)

// DefaultContentSelectors are the per-domain content selectors used by
// NewRegistry. Keys are hostnames without a leading "www.".
var DefaultContentSelectors = map[string]string{
	"medium.com":            "article",
	"dev.to":                "#article-body",
	"github.com":            ".markdown-body",
	"stackoverflow.com":     "#mainbar",
	"en.wikipedia.org":      "#mw-content-text",
	"news.ycombinator.com":  "#hnmain",
	"martinfowler.com":      ".paperBody",
	"blog.cloudflare.com":   ".post-content",
	"developer.mozilla.org": "main#content",
	"substack.com":          ".available-content",
}

// Registry maps hostnames to the CSS selector of their content region.
// Lookups try the exact hostname first, then the hostname without "www.".
type Registry struct {
	selectors map[string]string
}

// NewRegistry creates a new Registry holding DefaultContentSelectors.
func NewRegistry() *Registry {
	r := &Registry{selectors: make(map[string]string, len(DefaultContentSelectors))}
	for host, sel := range DefaultContentSelectors {
		r.Register(host, sel)
	}
	return r
}

// Get returns the content selector registered for host.
// Returns an empty string if there is none.
func (r *Registry) Get(host string) string {
	host = strings.ToLower(host)
	if sel, ok := r.selectors[host]; ok {
		return sel
	}
	return r.selectors[strings.TrimPrefix(host, "www.")]
}

// Register adds a selector for a host.
// If a selector is already registered for the host, it is replaced.
func (r *Registry) Register(host, selector string) {
	r.selectors[strings.ToLower(host)] = selector
}

// List returns all registered hosts, sorted.
func (r *Registry) List() []string {
	hosts := make([]string, 0, len(r.selectors))
	for h := range r.selectors {
		hosts = append(hosts, h)
	}
	slices.Sort(hosts)
	return hosts
}
