// Package normalize converts a cleaned HTML fragment into order-preserving
// CommonMark. The flattened Markdown of the convert package groups elements
// by type; model prompts read better with the original reading order, so the
// summarizer is fed this rendering instead.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// ErrEmptyInput is returned for blank fragments.
var ErrEmptyInput = errors.New("empty HTML input")

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer with table support.
func New() *MarkdownNormalizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &MarkdownNormalizer{conv: conv}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", ErrEmptyInput
	}
	markdown, err := n.conv.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
