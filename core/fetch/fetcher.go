// Package fetch implements the Fetcher interface.
// It loads pages over HTTP(S) with sensible defaults for web scraping, and
// reads local files for offline extraction.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/contentlens/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "ContentLens/1.0 (https://github.com/gaurav-prasanna/contentlens)"
)

var _ core.Fetcher = (*Fetcher)(nil)

// Fetcher loads documents from http(s) URLs, file URLs or local paths.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.Timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the HTML at src. Sources without a scheme are read from
// the local filesystem.
func (f *Fetcher) Fetch(ctx context.Context, src string) (*core.FetchResult, error) {
	u, err := url.Parse(src)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// No scheme, or a Windows drive letter.
		return f.readFile(src, fileURL(src))
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return f.get(ctx, src)
	case "file":
		return f.readFile(u.Path, src)
	default:
		return nil, fmt.Errorf("unsupported scheme %q in %s", u.Scheme, src)
	}
}

func (f *Fetcher) get(ctx context.Context, src string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	begin := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, src)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	log.Debug().
		Str("url", src).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(begin)).
		Msg("page fetched")

	return &core.FetchResult{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

func (f *Fetcher) readFile(path, src string) (*core.FetchResult, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &core.FetchResult{URL: src, HTML: string(body)}, nil
}

// fileURL returns the file URL of a local path, used as the document base.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}
