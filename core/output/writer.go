// Package output names and writes rendered extraction results.
// A page at https://example.com/docs/intro becomes example_com_docs_intro.<ext>;
// a local file keeps its base name.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/contentlens/core"
)

// fallbackName is used when nothing nameable is left of the source.
const fallbackName = "page"

// Writer stores rendered results in a directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer for outputDir, creating the directory if needed. An
// empty outputDir means the working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as <name><ext>, the name derived from the page URL, and
// returns the written path.
func (w *Writer) Write(meta core.PageMetadata, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FilenameFromURL(meta.URL)+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// FilenameFromURL flattens a page URL into a file name without extension.
// Host and path segments are joined with underscores; file URLs use the file
// name without its extension.
func FilenameFromURL(rawURL string) string {
	var parts []string
	u, err := url.Parse(rawURL)
	switch {
	case err != nil:
		parts = append(parts, rawURL)
	case u.Scheme == "file":
		name := filepath.Base(filepath.FromSlash(u.Path))
		parts = append(parts, strings.TrimSuffix(name, filepath.Ext(name)))
	default:
		parts = append(parts, u.Host)
		parts = append(parts, strings.Split(strings.Trim(u.Path, "/"), "/")...)
	}

	var kept []string
	for _, p := range parts {
		if s := sanitize(p); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return fallbackName
	}
	return strings.Join(kept, "_")
}

// sanitize keeps letters and digits of any script and turns everything else
// into underscores, trimming them at both ends.
func sanitize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
	return strings.Trim(mapped, "_")
}
