package mdclip

import (
	"net/url"
	"strings"
	"time"
)

// yamlSpecial lists the characters that force a front-matter string to be quoted.
const yamlSpecial = ":\"'|>{}[]@`!%&*\n"

// RenderFrontMatter renders the metadata block that precedes the Markdown
// body: a fenced YAML block, a blank line, the title as an H1 and a blank
// line. Enrichment fields are rendered only when enrichment is non-nil.
func RenderFrontMatter(page *PageContent, pageURL string, category Category, enrichment *Enrichment, now time.Time) string {
	published := "unknown"
	if page.PublicationDate != "" {
		published = page.PublicationDate
	}

	var domain string
	if u, err := url.Parse(pageURL); err == nil {
		domain = u.Hostname()
	}

	var b strings.Builder
	b.WriteString("```yaml\n---\n")
	writeField(&b, "title", yamlString(page.Title))
	writeField(&b, "source", yamlString(pageURL))
	writeField(&b, "date_published", yamlString(published))
	writeField(&b, "date_captured", now.UTC().Format("2006-01-02T15:04:05.000Z"))
	writeField(&b, "domain", yamlString(domain))
	writeField(&b, "author", yamlString(page.Author))
	writeField(&b, "category", string(category))

	if enrichment != nil {
		difficulty := enrichment.DifficultyLevel
		if difficulty == "" {
			difficulty = DifficultyUnknown
		}
		writeField(&b, "technologies", yamlList(enrichment.Technologies))
		writeField(&b, "programming_languages", yamlList(enrichment.ProgrammingLanguages))
		writeField(&b, "tags", yamlList(enrichment.Tags))
		writeField(&b, "key_concepts", yamlList(enrichment.KeyConcepts))
		if enrichment.CodeExamples {
			writeField(&b, "code_examples", "true")
		} else {
			writeField(&b, "code_examples", "false")
		}
		writeField(&b, "difficulty_level", string(difficulty))
		writeSummary(&b, enrichment.Summary)
	}

	b.WriteString("---\n```\n\n# ")
	b.WriteString(page.Title)
	b.WriteString("\n\n")
	return b.String()
}

// BuildArtifact joins the front-matter block and the Markdown body.
func BuildArtifact(frontMatter, body string) []byte {
	return []byte(frontMatter + body)
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

// writeSummary renders summary as a literal block, each line indented by two spaces.
func writeSummary(b *strings.Builder, summary string) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		writeField(b, "summary", `""`)
		return
	}
	b.WriteString("summary: |\n")
	for _, line := range strings.Split(summary, "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// yamlString double-quotes s if it contains a YAML indicator character
// or a newline, escaping backslashes, quotes and newlines.
func yamlString(s string) string {
	if !strings.ContainsAny(s, yamlSpecial) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func yamlList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = yamlString(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
