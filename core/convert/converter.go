// Package convert renders cleaned content as plain text, Markdown or an HTML
// fragment.
package convert

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/dom"
)

var _ core.Converter = (*Converter)(nil)

var blankLines = regexp.MustCompile(`\n{3,}`)

// Converter renders cleaned content. It holds no state and is safe for
// concurrent use.
type Converter struct{}

// New creates a Converter.
func New() *Converter {
	return &Converter{}
}

// Convert renders content in the requested format. Unsupported formats are
// rendered as text.
func (c *Converter) Convert(content *html.Node, format core.Format, base *url.URL) string {
	switch format {
	case core.FormatHTML:
		return HTML(content)
	case core.FormatMarkdown:
		return Markdown(content, base)
	default:
		return Text(content)
	}
}

// Text joins the trimmed, non-empty text nodes of content with newlines,
// collapses runs of three or more newlines to two and trims the result.
func Text(content *html.Node) string {
	var parts []string
	dom.TextNodes(content, func(n *html.Node) {
		if t := strings.TrimSpace(n.Data); t != "" {
			parts = append(parts, t)
		}
	})
	joined := strings.Join(parts, "\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(joined, "\n\n"))
}

// HTML returns the inner markup of content unchanged.
func HTML(content *html.Node) string {
	s, err := dom.InnerHTML(content)
	if err != nil {
		log.Warn().Err(err).Msg("serializing content markup")
		return ""
	}
	return s
}

// Markdown flattens content into Markdown grouped by element type rather
// than document order: headings, then paragraphs, lists, links and images.
// Each group is a separate pass in document order over the whole tree.
func Markdown(content *html.Node, base *url.URL) string {
	sel := dom.Select(content)
	var b strings.Builder

	sel.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		level := headingLevel(h.Get(0))
		b.WriteString(strings.Repeat("#", level))
		b.WriteString(" ")
		b.WriteString(strings.TrimSpace(h.Text()))
		b.WriteString("\n\n")
	})

	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		b.WriteString(strings.TrimSpace(p.Text()))
		b.WriteString("\n\n")
	})

	sel.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		ordered := list.Get(0).DataAtom == atom.Ol
		list.Find("li").Each(func(i int, item *goquery.Selection) {
			if ordered {
				b.WriteString(strconv.Itoa(i + 1))
				b.WriteString(". ")
			} else {
				b.WriteString("* ")
			}
			b.WriteString(strings.TrimSpace(item.Text()))
			b.WriteString("\n")
		})
		b.WriteString("\n")
	})

	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		href := dom.URLAttr(a.Get(0), "href", base)
		if text == "" || href == "" {
			return
		}
		b.WriteString("[" + text + "](" + href + ")\n")
	})

	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := dom.URLAttr(img.Get(0), "src", base)
		if src == "" {
			return
		}
		alt, _ := img.Attr("alt")
		b.WriteString("![" + alt + "](" + src + ")\n")
	})

	return strings.TrimSpace(b.String())
}

// headingLevel reads the numeral of an h1..h6 tag name.
func headingLevel(n *html.Node) int {
	level, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(n.Data), "h"))
	if err != nil || level < 1 || level > 6 {
		return 1
	}
	return level
}
