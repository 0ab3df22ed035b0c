package mdclip

import (
	"strings"
	"time"
)

// Filename returns the artifact filename {date}_{category}_{title}.md.
// The date is the publication date when it parses, now otherwise. Every
// title character outside [a-z0-9_.-] becomes an underscore.
func Filename(page *PageContent, category Category, now time.Time) string {
	date := now
	if t, ok := page.PublishedAt(); ok {
		date = t
	}
	return date.Format("2006-01-02") + "_" + string(category) + "_" + SafeTitle(page.Title) + ".md"
}

// SafeTitle lower-cases title and replaces characters that are unsafe in
// filenames with underscores. An empty title becomes "document".
func SafeTitle(title string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, title)
	if safe == "" {
		return "document"
	}
	return safe
}
