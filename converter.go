package mdclip

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be the content region from an Extractor.
	Convert(html string) (string, error)
}
