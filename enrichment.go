package mdclip

import (
	"context"
	"strings"
)

// Limits on list-valued enrichment fields.
const (
	MaxTags        = 10
	MaxKeyConcepts = 8
)

// Difficulty is the reading level reported by the enrichment service.
type Difficulty string

// Difficulty levels.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyUnknown      Difficulty = "unknown"
)

// Enrichment is structured metadata derived from the page by a generative model.
type Enrichment struct {
	Technologies         []string
	ProgrammingLanguages []string
	Tags                 []string
	KeyConcepts          []string
	CodeExamples         bool
	DifficultyLevel      Difficulty
	Summary              string

	// Content is the revised Markdown body. Empty when the model
	// returned no usable body.
	Content string
}

// Body returns the revised Markdown, or fallback if the model returned
// nothing but whitespace. Enrichment never erases article content.
func (e *Enrichment) Body(fallback string) string {
	if e == nil || strings.TrimSpace(e.Content) == "" {
		return fallback
	}
	return e.Content
}

// EnrichRequest is the input to an Enricher.
type EnrichRequest struct {
	Markdown string
	APIKey   string
	Model    string
	Images   []ImageSample
}

// Enricher derives tags, technologies and a summary from Markdown.
type Enricher interface {
	// Enrich returns ECONFIG if no API key is set and EREMOTE if the
	// remote service fails for good.
	Enrich(ctx context.Context, req EnrichRequest) (*Enrichment, error)
}
