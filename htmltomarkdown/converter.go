package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/mdclip"
)

// Ensure Converter implements mdclip.Converter at compile time.
var _ mdclip.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter that renders every heading level in
// ATX style, rules as ---, bullets as * and code blocks as fenced blocks
// annotated with the language of the <code> element.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithHorizontalRule("---"),
				commonmark.WithBulletListMarker("*"),
				commonmark.WithCodeBlockFence("```"),
			),
			table.NewTablePlugin(),
			&codeFencePlugin{},
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", mdclip.Errorf(mdclip.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

var languageClass = regexp.MustCompile(`(?:^|\s)(?:lang|language)-(\S+)`)

// Language returns the language named by a lang-xxx or language-xxx class,
// or an empty string.
func Language(class string) string {
	m := languageClass.FindStringSubmatch(class)
	if m == nil {
		return ""
	}
	return m[1]
}
