package mdclip

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// MaxImages is the most images sampled from a single page.
const MaxImages = 5

// MinImageSize is the smallest width and height, in pixels, of a sampled image.
const MinImageSize = 100

// PageContent is the readable content of a page, produced once per extraction.
type PageContent struct {
	Title  string
	HTML   string // inner markup of the content region
	Images []ImageSample
	Author string

	// PublicationDate is ISO-8601 when known and empty otherwise.
	// It is never filled with the current date.
	PublicationDate string
}

// PublishedAt parses PublicationDate. ISO-8601 values are read directly;
// anything else goes through dateparse, so RFC1123, "2024/03/05" or
// "March 5, 2024" still count as a publication date.
// Returns false if the page has no publication date or it does not parse.
func (p *PageContent) PublishedAt() (time.Time, bool) {
	date := strings.TrimSpace(p.PublicationDate)
	if date == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseAny(date); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ImageSample is an inline image re-encoded for transport to the enrichment service.
type ImageSample struct {
	Data     []byte
	MimeType string
	Alt      string
	Src      string
}

// Base64 returns the image data base64-encoded.
func (s *ImageSample) Base64() string {
	return base64.StdEncoding.EncodeToString(s.Data)
}
