package render

import (
	"github.com/gaurav-prasanna/contentlens/core"
)

// ContentRenderer writes the converted content as-is.
type ContentRenderer struct {
	format core.Format
}

// NewContentRenderer creates a ContentRenderer for results in format.
func NewContentRenderer(format core.Format) *ContentRenderer {
	return &ContentRenderer{format: core.ParseFormat(string(format))}
}

// Render returns the content as bytes (passthrough).
func (r *ContentRenderer) Render(result *core.ExtractionResult, meta core.PageMetadata) ([]byte, error) {
	return []byte(result.Content), nil
}

// Extension matches the content format.
func (r *ContentRenderer) Extension() string {
	switch r.format {
	case core.FormatMarkdown:
		return ".md"
	case core.FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}
