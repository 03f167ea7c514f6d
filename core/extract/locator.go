// Package extract isolates the main content of a document by:
//  1. Finding the best content region from a priority-ordered selector list
//  2. Pruning noise, empty nodes and attached behaviour from a copy of it
package extract

import (
	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/dom"
)

var _ core.Locator = (*Locator)(nil)

type tier struct {
	selector string
	match    cascadia.Selector
}

// Locator picks the content region of a document.
type Locator struct {
	tiers []tier
}

// NewLocator compiles the region selectors. Each entry is one priority tier
// and may itself be a selector group ("#content, .content").
func NewLocator(selectors []string) (*Locator, error) {
	tiers := make([]tier, 0, len(selectors))
	for _, s := range selectors {
		m, err := dom.Compile(s)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier{selector: s, match: m})
	}
	return &Locator{tiers: tiers}, nil
}

// Locate returns a copy of the first node, in document order, matching any
// selector of the highest tier that matches at all. With no match it falls
// back to the body, and failing that to root itself.
func (l *Locator) Locate(root *html.Node) *html.Node {
	sel := dom.Select(root)
	for _, t := range l.tiers {
		found := sel.FindMatcher(t.match).First()
		if found.Length() == 0 {
			continue
		}
		log.Debug().Str("selector", t.selector).Msg("content region located")
		return dom.Clone(found.Get(0))
	}

	if body := findBody(root); body != nil {
		log.Debug().Str("selector", "body").Msg("content region fell back to body")
		return dom.Clone(body)
	}
	log.Debug().Msg("content region fell back to document root")
	return dom.Clone(root)
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
