package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/contentlens/core/config"
	"github.com/gaurav-prasanna/contentlens/core/dom"
	"github.com/gaurav-prasanna/contentlens/core/extract"
)

func sanitize(t *testing.T, markup string) *html.Node {
	t.Helper()
	s, err := extract.NewSanitizer(config.DefaultTables().NoiseSelectors)
	require.NoError(t, err)
	region := dom.Select(parse(t, markup)).Find("article").Get(0)
	require.NotNil(t, region)
	return s.Sanitize(dom.Clone(region))
}

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("removes scripts, styles and controls", func(t *testing.T) {
		t.Parallel()

		region := sanitize(t, `<article>
			<script>var x = 1;</script>
			<style>p { color: red }</style>
			<p>keep me</p>
			<button>Share</button>
			<form><label>email</label><input name="e"></form>
			<iframe src="https://ads.example.com"></iframe>
		</article>`)

		sel := dom.Select(region)
		assert.Equal(t, 0, sel.Find("script, style, button, form, input, iframe").Length())
		assert.Equal(t, "keep me", sel.Find("p").Text())
	})

	t.Run("removes noise by class and id", func(t *testing.T) {
		t.Parallel()

		region := sanitize(t, `<article>
			<div class="sidebar">related</div>
			<div class="comments">first!</div>
			<div class="social-share">tweet</div>
			<div id="footer">footer</div>
			<nav>menu</nav>
			<p>story</p>
		</article>`)

		assert.Equal(t, "story", strings.TrimSpace(dom.Select(region).Text()))
	})

	t.Run("prunes elements without text", func(t *testing.T) {
		t.Parallel()

		region := sanitize(t, `<article><p>text</p><span>   </span><div><i></i></div><img src="a.png"><br></article>`)

		got, err := dom.InnerHTML(region)
		require.NoError(t, err)
		assert.Equal(t, `<p>text</p>`, got)
	})

	t.Run("keeps the region even when it is empty", func(t *testing.T) {
		t.Parallel()

		region := sanitize(t, `<article><div class="ad">buy</div></article>`)

		assert.Equal(t, "article", region.Data)
		assert.Nil(t, region.FirstChild)
	})

	t.Run("keeps structure and attributes", func(t *testing.T) {
		t.Parallel()

		region := sanitize(t, `<article><p class="lead" onclick="track()">hello <a href="/x">link</a></p></article>`)

		got, err := dom.InnerHTML(region)
		require.NoError(t, err)
		assert.Equal(t, `<p class="lead" onclick="track()">hello <a href="/x">link</a></p>`, got)
	})

	t.Run("replaces descendants with fresh nodes", func(t *testing.T) {
		t.Parallel()

		s, err := extract.NewSanitizer(nil)
		require.NoError(t, err)
		region := dom.Clone(dom.Select(parse(t, `<article><p>a</p></article>`)).Find("article").Get(0))
		original := region.FirstChild

		out := s.Sanitize(region)

		assert.Same(t, region, out)
		assert.NotSame(t, original, out.FirstChild)
		assert.Equal(t, "p", out.FirstChild.Data)
		assert.Equal(t, "a", dom.Text(out.FirstChild))
	})
}
