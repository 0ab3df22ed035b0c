package gemini

import (
	"regexp"
	"strings"

	"github.com/fwojciec/mdclip"
)

// Labels of the list-valued metadata fields.
const (
	labelTechnologies         = "Technologies"
	labelProgrammingLanguages = "Programming_Languages"
	labelTags                 = "Tags"
	labelKeyConcepts          = "Key_Concepts"
)

var (
	sectionsRe   = regexp.MustCompile(`(?s)##\s*Metadata\b(.*?)##\s*Content\b(.*)`)
	codeRe       = regexp.MustCompile(`(?i)Code[_ ]Examples:\s*\[?\s*(yes|no)\b`)
	difficultyRe = regexp.MustCompile(`(?i)Difficulty[_ ]Level:\s*\[?\s*(beginner|intermediate|advanced)\b`)
	summaryRe    = regexp.MustCompile(`(?is)Summary:[ \t]*(.*)`)
)

// listPatterns holds the bracketed and bare-line variants per field.
var listPatterns = map[string][]*regexp.Regexp{}

func init() {
	for _, label := range []string{labelTechnologies, labelProgrammingLanguages, labelTags, labelKeyConcepts} {
		name := strings.ReplaceAll(regexp.QuoteMeta(label), "_", "[_ ]")
		listPatterns[label] = []*regexp.Regexp{
			regexp.MustCompile(`(?i)` + name + `:\s*\[([^\]]*)\]`),
			regexp.MustCompile(`(?im)` + name + `:[ \t]*([^\[\s][^\n]*)$`),
		}
	}
}

// ParseResponse parses the model's reply into an Enrichment. Replies in
// the expected "## Metadata / ## Content" layout are parsed field by field;
// anything else falls back to searching the whole text for the list fields.
// It never fails: missing fields get their defaults.
func ParseResponse(text string) *mdclip.Enrichment {
	if m := sectionsRe.FindStringSubmatch(text); m != nil {
		e := parseMetadata(m[1])
		e.Content = strings.TrimSpace(m[2])
		return e
	}
	return parseFallback(text)
}

func parseMetadata(meta string) *mdclip.Enrichment {
	e := parseLists(meta)
	if m := codeRe.FindStringSubmatch(meta); m != nil {
		e.CodeExamples = strings.EqualFold(m[1], "yes")
	}
	if m := difficultyRe.FindStringSubmatch(meta); m != nil {
		e.DifficultyLevel = mdclip.Difficulty(strings.ToLower(m[1]))
	}
	if m := summaryRe.FindStringSubmatch(meta); m != nil {
		e.Summary = cleanSummary(m[1])
	}
	return e
}

func parseFallback(text string) *mdclip.Enrichment {
	return parseLists(text)
}

func parseLists(text string) *mdclip.Enrichment {
	return &mdclip.Enrichment{
		Technologies:         findList(text, labelTechnologies, 0),
		ProgrammingLanguages: findList(text, labelProgrammingLanguages, 0),
		Tags:                 findList(text, labelTags, mdclip.MaxTags),
		KeyConcepts:          findList(text, labelKeyConcepts, mdclip.MaxKeyConcepts),
		DifficultyLevel:      mdclip.DifficultyIntermediate,
	}
}

// findList returns the first non-empty list found for label. A limit of
// zero means unbounded.
func findList(text, label string, limit int) []string {
	for _, re := range listPatterns[label] {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if items := splitList(m[1]); len(items) > 0 {
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}
			return items
		}
	}
	return []string{}
}

// splitList splits a comma-separated list, dropping empty items and the
// placeholder "none".
func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.Trim(strings.TrimSpace(item), "\"'`")
		if item == "" || strings.EqualFold(item, "none") {
			continue
		}
		items = append(items, item)
	}
	return items
}

func cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
