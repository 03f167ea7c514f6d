// Package media collects structured image and table records from cleaned
// content.
package media

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/dom"
)

var _ core.MediaExtractor = (*Extractor)(nil)

// Extractor reads media records without modifying the tree. It is safe for
// concurrent use.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns every usable image and every table below content.
func (e *Extractor) Extract(content *html.Node, base *url.URL) core.MediaBundle {
	sel := dom.Select(content)
	bundle := core.MediaBundle{
		Images: Images(sel, base),
		Tables: Tables(sel),
	}
	log.Debug().
		Int("images", len(bundle.Images)).
		Int("tables", len(bundle.Tables)).
		Msg("media extracted")
	return bundle
}

// Images returns the img elements with a source that is neither empty nor a
// data URI. Parsed documents carry no natural dimensions, so width and
// height come from the declared attributes.
func Images(sel *goquery.Selection, base *url.URL) []core.MediaImage {
	images := []core.MediaImage{}
	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		n := img.Get(0)
		src := dom.URLAttr(n, "src", base)
		if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
			return
		}
		alt, _ := img.Attr("alt")
		title, _ := img.Attr("title")
		images = append(images, core.MediaImage{
			Src:    src,
			Alt:    alt,
			Title:  title,
			Width:  dom.IntAttr(n, "width"),
			Height: dom.IntAttr(n, "height"),
		})
	})
	return images
}

// Tables returns every table element, nested ones included.
func Tables(sel *goquery.Selection) []core.MediaTable {
	tables := []core.MediaTable{}
	sel.Find("table").Each(func(_ int, t *goquery.Selection) {
		n := t.Get(0)
		table := core.MediaTable{Rows: [][]core.MediaCell{}}
		if caption := firstChild(n, atom.Caption); caption != nil {
			table.Caption = strings.TrimSpace(dom.Text(caption))
		}
		for _, tr := range rows(n) {
			table.Rows = append(table.Rows, cells(tr))
		}
		tables = append(tables, table)
	})
	return tables
}

// rows lists the rows of a table in table-model order: header group rows
// first, then body rows and direct rows in tree order, then footer rows.
// Rows of nested tables are not included.
func rows(table *html.Node) []*html.Node {
	var head, body, foot []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Thead:
			head = append(head, children(c, atom.Tr)...)
		case atom.Tbody:
			body = append(body, children(c, atom.Tr)...)
		case atom.Tr:
			body = append(body, c)
		case atom.Tfoot:
			foot = append(foot, children(c, atom.Tr)...)
		}
	}
	out := make([]*html.Node, 0, len(head)+len(body)+len(foot))
	out = append(out, head...)
	out = append(out, body...)
	return append(out, foot...)
}

func cells(tr *html.Node) []core.MediaCell {
	row := []core.MediaCell{}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		row = append(row, core.MediaCell{
			Content:  strings.TrimSpace(dom.Text(c)),
			IsHeader: c.DataAtom == atom.Th,
			Colspan:  span(c, "colspan"),
			Rowspan:  span(c, "rowspan"),
		})
	}
	return row
}

// span reads a span attribute, defaulting to 1 when absent or zero.
func span(n *html.Node, name string) int {
	if v := dom.IntAttr(n, name); v > 0 {
		return v
	}
	return 1
}

func firstChild(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func children(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, c)
		}
	}
	return out
}
