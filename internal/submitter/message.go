package submitter

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// articleMarkdown pulls the first <article> out of an answer page and
// renders it as Markdown. The page chrome around it (navigation, ads,
// sponsor links) is dropped. Bodies without an article yield "".
func articleMarkdown(body string) string {
	if !strings.Contains(body, "<article") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	article := doc.Find("main article").First()
	if article.Length() == 0 {
		article = doc.Find("article").First()
	}
	if article.Length() == 0 {
		return ""
	}

	return convertNode(article.Nodes[0])
}

func convertNode(node *html.Node) string {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	markdown, err := conv.ConvertNode(node)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(markdown))
}
