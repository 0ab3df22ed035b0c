package mdclip_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/mdclip"
	"github.com/stretchr/testify/assert"
)

var captured = time.Date(2026, 1, 10, 15, 30, 0, 0, time.UTC)

func TestRenderFrontMatter(t *testing.T) {
	t.Parallel()

	t.Run("renders base fields", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{
			Title:           "Plain Title",
			Author:          "Jane Doe",
			PublicationDate: "2024-02-06T10:00:00Z",
		}

		got := mdclip.RenderFrontMatter(page, "https://blog.example.com/post", mdclip.CategoryGeneral, nil, captured)

		want := "```yaml\n---\n" +
			"title: Plain Title\n" +
			"source: \"https://blog.example.com/post\"\n" +
			"date_published: \"2024-02-06T10:00:00Z\"\n" +
			"date_captured: 2026-01-10T15:30:00.000Z\n" +
			"domain: blog.example.com\n" +
			"author: Jane Doe\n" +
			"category: general\n" +
			"---\n```\n\n# Plain Title\n\n"
		assert.Equal(t, want, got)
	})

	t.Run("quotes and escapes titles with special characters", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{Title: `Go: the "fast" way`, Author: "Unknown"}

		got := mdclip.RenderFrontMatter(page, "https://x.test", mdclip.CategoryProgramming, nil, captured)

		assert.Contains(t, got, "title: \"Go: the \\\"fast\\\" way\"\n")
	})

	t.Run("leaves plain titles unquoted", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{Title: "Nothing special here"}

		got := mdclip.RenderFrontMatter(page, "https://x.test", mdclip.CategoryGeneral, nil, captured)

		assert.Contains(t, got, "title: Nothing special here\n")
	})

	t.Run("quotes embedded newlines", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{Title: "t", Author: "Jane\nDoe"}

		got := mdclip.RenderFrontMatter(page, "https://x.test", mdclip.CategoryGeneral, nil, captured)

		assert.Contains(t, got, "author: \"Jane\\nDoe\"\n")
	})

	t.Run("renders unknown publication date", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{Title: "t"}

		got := mdclip.RenderFrontMatter(page, "https://x.test", mdclip.CategoryGeneral, nil, captured)

		assert.Contains(t, got, "date_published: unknown\n")
	})

	t.Run("omits enrichment fields without enrichment", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{Title: "t"}

		got := mdclip.RenderFrontMatter(page, "https://x.test", mdclip.CategoryGeneral, nil, captured)

		assert.NotContains(t, got, "tags:")
		assert.NotContains(t, got, "summary:")
	})

	t.Run("renders enrichment fields", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{Title: "t"}
		enrichment := &mdclip.Enrichment{
			Technologies:         []string{"Docker", "Kubernetes"},
			ProgrammingLanguages: []string{"Go"},
			Tags:                 []string{"devops", "k8s: intro"},
			CodeExamples:         true,
			DifficultyLevel:      mdclip.DifficultyAdvanced,
			Summary:              "First line.\nSecond line.",
		}

		got := mdclip.RenderFrontMatter(page, "https://x.test", mdclip.CategoryDevOps, enrichment, captured)

		assert.Contains(t, got, "technologies: [Docker, Kubernetes]\n")
		assert.Contains(t, got, "programming_languages: [Go]\n")
		assert.Contains(t, got, "tags: [devops, \"k8s: intro\"]\n")
		assert.Contains(t, got, "key_concepts: []\n")
		assert.Contains(t, got, "code_examples: true\n")
		assert.Contains(t, got, "difficulty_level: advanced\n")
		assert.Contains(t, got, "summary: |\n  First line.\n  Second line.\n")
	})

	t.Run("defaults empty enrichment fields", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{Title: "t"}

		got := mdclip.RenderFrontMatter(page, "https://x.test", mdclip.CategoryGeneral, &mdclip.Enrichment{}, captured)

		assert.Contains(t, got, "technologies: []\n")
		assert.Contains(t, got, "code_examples: false\n")
		assert.Contains(t, got, "difficulty_level: unknown\n")
		assert.Contains(t, got, "summary: \"\"\n")
	})

	t.Run("ends with title heading", func(t *testing.T) {
		t.Parallel()

		page := &mdclip.PageContent{Title: "Hello"}

		got := mdclip.RenderFrontMatter(page, "https://x.test", mdclip.CategoryGeneral, nil, captured)

		assert.True(t, strings.HasSuffix(got, "---\n```\n\n# Hello\n\n"))
	})
}

func TestBuildArtifact(t *testing.T) {
	t.Parallel()

	got := mdclip.BuildArtifact("header\n\n", "body")

	assert.Equal(t, []byte("header\n\nbody"), got)
}
