package dom_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/contentlens/core/dom"
)

func body(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := dom.ParseString(markup)
	require.NoError(t, err)
	b := dom.Select(root).Find("body").Get(0)
	require.NotNil(t, b)
	return b
}

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("copies structure and attributes", func(t *testing.T) {
		t.Parallel()

		b := body(t, `<div id="a" class="x"><p>hi <b>there</b></p></div>`)
		c := dom.Clone(b)

		want, err := dom.InnerHTML(b)
		require.NoError(t, err)
		got, err := dom.InnerHTML(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Nil(t, c.Parent)
	})

	t.Run("shares nothing with the source", func(t *testing.T) {
		t.Parallel()

		b := body(t, `<div id="a"><p>one</p><p>two</p></div>`)
		c := dom.Clone(b)

		div := c.FirstChild
		div.Attr[0].Val = "changed"
		dom.Detach(div.FirstChild)

		got, err := dom.InnerHTML(b)
		require.NoError(t, err)
		assert.Equal(t, `<div id="a"><p>one</p><p>two</p></div>`, got)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, dom.Clone(nil))
	})
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	t.Run("replaces the node in its parent", func(t *testing.T) {
		t.Parallel()

		b := body(t, `<span>a</span><div onclick="go()"><p>hi</p></div><span>b</span>`)
		old := dom.Select(b).Find("div").Get(0)

		fresh := dom.Rebuild(old)

		assert.NotSame(t, old, fresh)
		assert.Nil(t, old.Parent)
		assert.Same(t, b, fresh.Parent)
		got, err := dom.InnerHTML(b)
		require.NoError(t, err)
		assert.Equal(t, `<span>a</span><div onclick="go()"><p>hi</p></div><span>b</span>`, got)
	})

	t.Run("detached node is copied only", func(t *testing.T) {
		t.Parallel()

		n := &html.Node{Type: html.ElementNode, Data: "p"}
		fresh := dom.Rebuild(n)

		assert.NotSame(t, n, fresh)
		assert.Nil(t, fresh.Parent)
	})
}

func TestText(t *testing.T) {
	t.Parallel()

	b := body(t, `<p>a <b>b</b></p><!-- note --><p>c</p>`)
	assert.Equal(t, "a bc", dom.Text(b))

	var texts []string
	dom.TextNodes(b, func(n *html.Node) { texts = append(texts, n.Data) })
	assert.Equal(t, []string{"a ", "b", "c"}, texts)
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	t.Run("integer attributes", func(t *testing.T) {
		t.Parallel()

		b := body(t, `<img width=" 120 " height="abc">`)
		img := b.FirstChild

		assert.Equal(t, 120, dom.IntAttr(img, "width"))
		assert.Equal(t, 0, dom.IntAttr(img, "height"))
		assert.Equal(t, 0, dom.IntAttr(img, "border"))
	})

	t.Run("url attributes resolve against the base", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://example.com/blog/post")
		require.NoError(t, err)
		b := body(t, `<a href="../about">x</a><a href=" https://other.org/ ">y</a><a>z</a>`)
		links := dom.Select(b).Find("a").Nodes

		assert.Equal(t, "https://example.com/about", dom.URLAttr(links[0], "href", base))
		assert.Equal(t, "https://other.org/", dom.URLAttr(links[1], "href", base))
		assert.Equal(t, "", dom.URLAttr(links[2], "href", base))
		assert.Equal(t, "../about", dom.URLAttr(links[0], "href", nil))
	})
}

func TestCompile(t *testing.T) {
	t.Parallel()

	_, err := dom.Compile("#content, .content")
	require.NoError(t, err)

	_, err = dom.Compile("div[")
	assert.Error(t, err)
}
