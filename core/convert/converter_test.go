package convert_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/convert"
	"github.com/gaurav-prasanna/contentlens/core/dom"
)

func content(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := dom.ParseString(markup)
	require.NoError(t, err)
	b := dom.Select(root).Find("body").Get(0)
	require.NotNil(t, b)
	return b
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "joins trimmed text nodes",
			markup: "<div><p>  a  </p>\n\n\n\n<p>b <b>c</b></p></div>",
			want:   "a\nb\nc",
		},
		{
			name:   "collapses blank lines inside a node",
			markup: "<pre>a\n\n\n\nb</pre>",
			want:   "a\n\nb",
		},
		{
			name:   "empty content",
			markup: "<div>   </div>",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convert.Text(content(t, tt.markup)))
		})
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/post/")
	require.NoError(t, err)

	tests := []struct {
		name   string
		markup string
		base   *url.URL
		want   string
	}{
		{
			name:   "headings come before paragraphs",
			markup: `<p>B</p><h2>A</h2>`,
			want:   "## A\n\nB",
		},
		{
			name:   "lists",
			markup: `<ul><li>x</li><li>y</li></ul><ol><li>one</li><li>two</li></ol>`,
			want:   "* x\n* y\n\n1. one\n2. two",
		},
		{
			name:   "nested list items are repeated",
			markup: `<ul><li>a<ol><li>b</li></ol></li></ul>`,
			want:   "* ab\n* b\n\n1. b",
		},
		{
			name:   "links resolve against the base",
			markup: `<a href="/about">About</a><a href="x">  </a><a>no href</a>`,
			base:   base,
			want:   "[About](https://example.com/about)",
		},
		{
			name:   "images resolve against the base",
			markup: `<img src="pic.png" alt="P"><img alt="none">`,
			base:   base,
			want:   "![P](https://example.com/post/pic.png)",
		},
		{
			name:   "groups in fixed order",
			markup: `<p>para</p><img src="i.png"><a href="https://x.org">link</a><ul><li>item</li></ul><h1>Title</h1>`,
			want:   "# Title\n\npara\n\n* item\n\n[link](https://x.org)\n![](i.png)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convert.Markdown(content(t, tt.markup), tt.base))
		})
	}
}

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	c := convert.New()

	t.Run("html returns inner markup", func(t *testing.T) {
		t.Parallel()

		got := c.Convert(content(t, `<p>a <b>b</b></p>`), core.FormatHTML, nil)
		assert.Equal(t, `<p>a <b>b</b></p>`, got)
	})

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()

		got := c.Convert(content(t, `<h3>T</h3>`), core.FormatMarkdown, nil)
		assert.Equal(t, "### T", got)
	})

	t.Run("unsupported format renders text", func(t *testing.T) {
		t.Parallel()

		got := c.Convert(content(t, `<h1>T</h1><p>x</p>`), core.Format("pdf"), nil)
		assert.Equal(t, "T\nx", got)
	})
}
