package extract

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/dom"
)

var _ core.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips noise from a content region.
type Sanitizer struct {
	noise []cascadia.Selector
}

// NewSanitizer compiles the noise selectors.
func NewSanitizer(selectors []string) (*Sanitizer, error) {
	noise := make([]cascadia.Selector, 0, len(selectors))
	for _, s := range selectors {
		m, err := dom.Compile(s)
		if err != nil {
			return nil, err
		}
		noise = append(noise, m)
	}
	return &Sanitizer{noise: noise}, nil
}

// Sanitize runs three passes over the descendants of region, mutating it:
// noise removal, empty-element removal, then behaviour stripping. The region
// node itself is never removed.
func (s *Sanitizer) Sanitize(region *html.Node) *html.Node {
	noise := s.removeNoise(region)
	empty := removeEmpty(region)
	stripBehaviour(region)

	log.Debug().
		Int("noise_removed", noise).
		Int("empty_removed", empty).
		Msg("content sanitized")
	return region
}

// removeNoise deletes every descendant matching a noise selector, one
// selector at a time in list order.
func (s *Sanitizer) removeNoise(region *html.Node) int {
	sel := dom.Select(region)
	var removed int
	for _, m := range s.noise {
		found := sel.FindMatcher(m)
		removed += found.Length()
		found.Remove()
	}
	return removed
}

// removeEmpty visits a snapshot of the descendant elements once, in
// document order, and deletes those whose trimmed text is empty at the time
// they are visited. It does not repeat until stable: ancestors are visited
// before their children, so removing a child never revisits the parent.
// Elements without text, such as img and br, are removed here as well.
func removeEmpty(region *html.Node) int {
	var removed int
	for _, n := range dom.Select(region).Find("*").Nodes {
		if strings.TrimSpace(dom.Text(n)) != "" {
			continue
		}
		dom.Detach(n)
		removed++
	}
	return removed
}

// stripBehaviour replaces every descendant with a rebuilt copy. Rebuilding a
// child rebuilds its whole subtree, so replacing the element children of the
// region covers every descendant.
func stripBehaviour(region *html.Node) {
	var children []*html.Node
	for c := region.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	for _, c := range children {
		dom.Rebuild(c)
	}
}
