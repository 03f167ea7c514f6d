// Package dom holds the document-node operations every pipeline stage shares.
// A DocumentNode is an *html.Node from golang.org/x/net/html; selection is
// delegated to goquery and cascadia.
package dom

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Parse reads an HTML document into a node tree.
func Parse(r io.Reader) (*html.Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return root, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Select wraps n in a goquery selection rooted at n.
func Select(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// Compile parses a CSS selector group. A group such as "#content, .content"
// matches a node when any of its members does.
func Compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", selector, err)
	}
	return sel, nil
}

// Clone returns a deep copy of n that shares nothing with the source tree.
// The copy has no parent or siblings.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// Rebuild swaps n for a fresh structural copy in n's parent and returns the
// copy. Tag, attributes and children are preserved exactly; anything bound to
// the identity of the old node does not carry over. A detached n is copied
// but nothing is replaced.
func Rebuild(n *html.Node) *html.Node {
	fresh := Clone(n)
	if parent := n.Parent; parent != nil {
		parent.InsertBefore(fresh, n)
		parent.RemoveChild(n)
	}
	return fresh
}

// Detach removes n from its parent, if it has one.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Text returns the rendered text content of n: every descendant text node
// concatenated in document order.
func Text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	return Select(n).Text()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	return Select(n).Html()
}

// TextNodes calls fn for every text node below n in document order.
func TextNodes(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			fn(c)
			continue
		}
		TextNodes(c, fn)
	}
}

// Attr returns the value of the named attribute on n.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// IntAttr parses a non-negative integer attribute such as width or colspan.
// Missing or malformed values yield 0.
func IntAttr(n *html.Node, name string) int {
	v, ok := Attr(n, name)
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i < 0 {
		return 0
	}
	return i
}

// URLAttr returns the named attribute resolved against base, the way a
// browser exposes a.href or img.src. A missing attribute yields "". With no
// base the trimmed attribute value is returned as-is.
func URLAttr(n *html.Node, name string, base *url.URL) string {
	v, ok := Attr(n, name)
	if !ok {
		return ""
	}
	return ResolveURL(base, v)
}

// ResolveURL resolves ref against base. Unparseable references are returned
// unchanged.
func ResolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if base == nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}
