package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// codeFencePlugin renders <pre><code> as a fenced block from the code's
// text content rather than its converted children.
type codeFencePlugin struct{}

func (p *codeFencePlugin) Name() string {
	return "code-fence"
}

func (p *codeFencePlugin) Init(conv *converter.Converter) error {
	conv.Register.RendererFor("pre", converter.TagTypeBlock, p.renderPre, converter.PriorityEarly)
	return nil
}

func (p *codeFencePlugin) renderPre(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	code := goquery.NewDocumentFromNode(n).Find("code").First()
	if code.Length() == 0 {
		return converter.RenderTryNext
	}

	lang := Language(code.AttrOr("class", ""))
	text := strings.TrimSpace(code.Text())

	w.WriteString("\n\n```")
	w.WriteString(lang)
	w.WriteString("\n")
	w.WriteString(text)
	w.WriteString("\n```\n\n")
	return converter.RenderSuccess
}
