package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/dom"
	"github.com/gaurav-prasanna/contentlens/core/pipeline"
)

// loadDocument checks, fetches and parses src. The scheme check runs before
// anything is fetched.
func loadDocument(ctx context.Context, p *pipeline.Pipeline, fetcher core.Fetcher, src string) (pipeline.Document, core.PageMetadata, error) {
	if err := p.CheckURL(src); err != nil {
		return pipeline.Document{}, core.PageMetadata{}, err
	}

	result, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return pipeline.Document{}, core.PageMetadata{}, fmt.Errorf("fetch: %w", err)
	}

	root, err := dom.ParseString(result.HTML)
	if err != nil {
		return pipeline.Document{}, core.PageMetadata{}, err
	}

	doc := pipeline.Document{Root: root, URL: result.URL}
	return doc, buildMetadata(result.URL, root), nil
}

// buildMetadata constructs PageMetadata from the URL and parsed document.
func buildMetadata(rawURL string, root *html.Node) core.PageMetadata {
	meta := core.PageMetadata{
		URL:       rawURL,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	}

	sel := dom.Select(root)
	meta.Title = strings.TrimSpace(sel.Find("head > title").First().Text())
	if lang, ok := sel.Find("html").First().Attr("lang"); ok {
		meta.Language = strings.TrimSpace(lang)
	}
	return meta
}
