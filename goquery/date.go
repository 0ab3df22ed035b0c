package goquery

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// dateStrategy returns a publication date found by one technique, or "".
type dateStrategy func(doc *goquery.Document, pageURL *url.URL) string

// dateStrategies are tried in order; the first non-empty result wins.
var dateStrategies = []dateStrategy{
	dateFromMeta,
	dateFromJSONLD,
	dateFromElements,
	dateFromURL,
}

// publishedDateMeta lists meta names and properties carrying a publication date.
var publishedDateMeta = []string{
	"article:published_time",
	"publish_date",
	"publication_date",
	"article:published",
	"date",
	"DC.date.issued",
	"og:published_time",
	"datePublished",
}

// publishedDateElements lists elements whose attribute or text is a date.
var publishedDateElements = []string{
	"time[datetime]",
	"time[pubdate]",
	"[itemprop='datePublished']",
	".published",
	".pub-date",
	".publish-date",
	".publication-date",
	".post-date",
	".entry-date",
	".article-date",
	".date-published",
	".timestamp",
}

// PublicationDate returns the publication date of a page, or an empty
// string. It never substitutes the current date.
func PublicationDate(doc *goquery.Document, pageURL *url.URL) string {
	for _, strategy := range dateStrategies {
		if date := strategy(doc, pageURL); date != "" {
			return date
		}
	}
	return ""
}

func dateFromMeta(doc *goquery.Document, _ *url.URL) string {
	for _, key := range publishedDateMeta {
		sel := fmt.Sprintf("meta[property=%q], meta[name=%q], meta[itemprop=%q]", key, key, key)
		var date string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			date = strings.TrimSpace(s.AttrOr("content", ""))
			return date == ""
		})
		if date != "" {
			return isoDate(date)
		}
	}
	return ""
}

func dateFromJSONLD(doc *goquery.Document, _ *url.URL) string {
	var date string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		date = jsonLDDate(data)
		return date == ""
	})
	if date == "" {
		return ""
	}
	return isoDate(date)
}

// isoDate keeps ISO-8601 values as published and normalizes any other
// recognizable date. Unrecognized values are kept verbatim.
func isoDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if _, err := time.Parse(layout, s); err == nil {
			return s
		}
	}
	if date := NormalizeDate(s); date != "" {
		return date
	}
	return s
}

// jsonLDDate reads datePublished, then dateCreated, from a JSON-LD block.
// A block may be a single object, an array of objects, or an object with an
// @graph array; nested objects deeper than @graph are not searched.
func jsonLDDate(data any) string {
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				if date := jsonLDObjectDate(obj); date != "" {
					return date
				}
			}
		}
	case map[string]any:
		if date := jsonLDObjectDate(v); date != "" {
			return date
		}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if obj, ok := item.(map[string]any); ok {
					if date := jsonLDObjectDate(obj); date != "" {
						return date
					}
				}
			}
		}
	}
	return ""
}

func jsonLDObjectDate(obj map[string]any) string {
	for _, key := range []string{"datePublished", "dateCreated"} {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func dateFromElements(doc *goquery.Document, _ *url.URL) string {
	for _, sel := range publishedDateElements {
		var date string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			raw := s.AttrOr("datetime", "")
			if raw == "" {
				raw = s.AttrOr("content", "")
			}
			if raw == "" {
				raw = s.Text()
			}
			date = NormalizeDate(raw)
			return date == ""
		})
		if date != "" {
			return date
		}
	}
	return ""
}

// NormalizeDate parses a free-form date and formats it as ISO-8601 in UTC.
// Returns an empty string if s is not a recognizable date.
func NormalizeDate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

var (
	urlSlashDate = regexp.MustCompile(`/(\d{4})/(\d{1,2})/(\d{1,2})(?:/|$)`)
	urlDashDate  = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
)

func dateFromURL(_ *goquery.Document, pageURL *url.URL) string {
	if pageURL == nil {
		return ""
	}
	for _, re := range []*regexp.Regexp{urlSlashDate, urlDashDate} {
		m := re.FindStringSubmatch(pageURL.Path)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Year() != year || int(t.Month()) != month || t.Day() != day {
			continue
		}
		return t.Format("2006-01-02")
	}
	return ""
}
