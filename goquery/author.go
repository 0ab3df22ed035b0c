package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// UnknownAuthor is reported when a page names no author.
const UnknownAuthor = "Unknown"

// Author returns the first author found in, in order: an author meta tag,
// a rel=author element, an author name element and microdata. Returns
// UnknownAuthor if none is found.
func Author(doc *goquery.Document) string {
	if name := strings.TrimSpace(doc.Find(`meta[name="author"]`).First().AttrOr("content", "")); name != "" {
		return name
	}
	for _, sel := range []string{`[rel="author"]`, ".author-name", `[itemprop="author"]`} {
		if name := authorText(doc.Find(sel).First()); name != "" {
			return name
		}
	}
	return UnknownAuthor
}

func authorText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if name := s.Find(`[itemprop="name"]`).First(); name.Length() > 0 {
		if text := strings.TrimSpace(name.AttrOr("content", name.Text())); text != "" {
			return text
		}
	}
	if content := strings.TrimSpace(s.AttrOr("content", "")); content != "" {
		return content
	}
	return strings.Join(strings.Fields(s.Text()), " ")
}
