package gemini

import (
	"fmt"
	"strings"

	"github.com/fwojciec/mdclip"
	"google.golang.org/genai"
)

// Generation parameters for enrichment calls.
const (
	Temperature     = 0.2
	MaxOutputTokens = 8192
)

const instructions = `Analyze the web article below and return your answer in exactly this format, with no text before the first heading:

## Metadata
Technologies: [comma-separated technologies, frameworks and tools discussed, or none]
Programming_Languages: [comma-separated programming languages used or discussed, or none]
Tags: [up to 10 short lowercase topic tags, or none]
Key_Concepts: [up to 8 key concepts, or none]
Code_Examples: [yes or no]
Difficulty_Level: [beginner, intermediate or advanced]
Summary: [two or three sentences summarizing the article]

## Content
[the full article rewritten as clean, well-structured Markdown: fix broken formatting, keep every section, code block and link, do not shorten]
`

// BuildConfig returns the GenerateContentConfig for enrichment calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(Temperature)
	return &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: MaxOutputTokens,
	}
}

// BuildPrompt builds the prompt text for the given Markdown. imageCount
// extends the instructions with a request to describe attached images.
func BuildPrompt(markdown string, imageCount int) string {
	var sb strings.Builder
	sb.WriteString(instructions)
	if imageCount > 0 {
		fmt.Fprintf(&sb, "\n%d image(s) from the article are attached after the article text. "+
			"In the Content section, add a short italic description below each image that "+
			"carries information (diagrams, screenshots, charts), placed where the image appears.\n", imageCount)
	}
	sb.WriteString("\nArticle:\n\n")
	sb.WriteString(markdown)
	return sb.String()
}

// BuildContents builds the request contents: the prompt text followed by
// one inline data part per image.
func BuildContents(markdown string, images []mdclip.ImageSample) []*genai.Content {
	parts := []*genai.Part{{Text: BuildPrompt(markdown, len(images))}}
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MimeType,
				Data:     img.Data,
			},
		})
	}
	return []*genai.Content{{
		Role:  "user",
		Parts: parts,
	}}
}
