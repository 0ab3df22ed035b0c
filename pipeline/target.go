package pipeline

import (
	"net/url"
	"strings"

	"github.com/fwojciec/mdclip"
)

// nonWebSchemes are opaque schemes that name browser-internal or local
// content. Inputs starting with one of them are never treated as a bare host.
var nonWebSchemes = []string{
	"about:", "blob:", "chrome:", "chrome-extension:", "data:", "devtools:",
	"edge:", "file:", "javascript:", "mailto:", "moz-extension:", "view-source:",
}

// ValidateTarget parses rawURL and checks that it names an extractable web
// page. Internal browser pages, local files and URLs without a host are
// rejected with EINVALIDTARGET. An input without a scheme, such as
// "example.com/post" or "localhost:8080/post", is treated as https.
func ValidateTarget(rawURL string) (*url.URL, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return nil, mdclip.Errorf(mdclip.EINVALIDTARGET, "no page URL given")
	}
	if !strings.Contains(raw, "://") && !hasNonWebScheme(raw) {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, mdclip.Errorf(mdclip.EINVALIDTARGET, "invalid URL %q", rawURL)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, mdclip.Errorf(mdclip.EINVALIDTARGET, "cannot extract content from %s: URLs, only http and https pages", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, mdclip.Errorf(mdclip.EINVALIDTARGET, "URL %q has no host", rawURL)
	}

	return u, nil
}

func hasNonWebScheme(raw string) bool {
	lower := strings.ToLower(raw)
	for _, scheme := range nonWebSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
