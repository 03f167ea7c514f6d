// Package core defines the extraction pipeline types and stage interfaces
// for ContentLens. Each stage is a clean, testable interface operating on an
// explicit document node; no stage reaches for an ambient document.
package core

import (
	"context"
	"net/url"

	"golang.org/x/net/html"
)

// Format is a textual representation the pipeline can render.
type Format string

// Supported output formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat maps a requested format onto a supported one. Empty and
// unsupported values fall back to text.
func ParseFormat(s string) Format {
	switch f := Format(s); f {
	case FormatText, FormatMarkdown, FormatHTML:
		return f
	default:
		return FormatText
	}
}

// MediaImage is an image found in the cleaned content.
type MediaImage struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MediaCell is a single table cell.
type MediaCell struct {
	Content  string `json:"content"`
	IsHeader bool   `json:"isHeader"`
	Colspan  int    `json:"colspan"`
	Rowspan  int    `json:"rowspan"`
}

// MediaTable is a table found in the cleaned content.
type MediaTable struct {
	Caption string        `json:"caption"`
	Rows    [][]MediaCell `json:"rows"`
}

// MediaBundle groups the structured media of a document.
type MediaBundle struct {
	Images []MediaImage `json:"images"`
	Tables []MediaTable `json:"tables"`
}

// AnalysisResult holds the statistical analysis of the plain-text content.
type AnalysisResult struct {
	Keywords    []string `json:"keywords"`
	Topic       string   `json:"topic"`
	WordCount   int      `json:"wordCount"`
	ReadingTime int      `json:"readingTime"` // minutes
}

// ExtractionResult is everything one extraction call produces.
type ExtractionResult struct {
	Content  string         `json:"content"`
	Format   Format         `json:"format"`
	Media    MediaBundle    `json:"media"`
	Analysis AnalysisResult `json:"analysis"`
}

// Request is a message from the host messaging layer.
type Request struct {
	Action     string `json:"action"`
	Format     string `json:"format,omitempty"`
	Content    string `json:"content,omitempty"`
	TargetLang string `json:"targetLang,omitempty"`
	Style      string `json:"style,omitempty"`
}

// Request actions.
const (
	ActionExtract   = "extract"
	ActionTranslate = "translate"
)

// Response is the reply sent back to the host messaging layer. Content is
// set on every successful extract reply, even when it is empty, and left nil
// on translate and failure replies.
type Response struct {
	Success  bool            `json:"success"`
	Content  *string         `json:"content,omitempty"`
	Analysis *AnalysisResult `json:"analysis,omitempty"`
	Media    *MediaBundle    `json:"media,omitempty"`
	Prompt   string          `json:"prompt,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageMetadata describes the source of an extraction.
type PageMetadata struct {
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	Language  string `json:"language"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// Locator selects the subtree most likely to hold the primary content.
// The returned region is a private copy; it never fails.
type Locator interface {
	Locate(root *html.Node) *html.Node
}

// Sanitizer prunes noise and empty nodes from a region in place.
type Sanitizer interface {
	Sanitize(region *html.Node) *html.Node
}

// Converter renders cleaned content into a textual format. Relative URLs
// are resolved against base when it is non-nil.
type Converter interface {
	Convert(content *html.Node, format Format, base *url.URL) string
}

// MediaExtractor collects images and tables from cleaned content.
type MediaExtractor interface {
	Extract(content *html.Node, base *url.URL) MediaBundle
}

// Analyzer computes statistics over plain text.
type Analyzer interface {
	Analyze(text string) AnalysisResult
}

// Fetcher retrieves raw HTML from a URL or local path.
type Fetcher interface {
	Fetch(ctx context.Context, src string) (*FetchResult, error)
}

// Renderer converts an extraction result into a final output file.
type Renderer interface {
	Render(result *ExtractionResult, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
