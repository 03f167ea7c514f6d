// Package pipeline wires the extraction stages together:
// locate → sanitize → (convert ‖ media) → analyze.
//
// It also answers host requests (extract, translate) with the response
// envelope the messaging layer expects.
package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/analyze"
	"github.com/gaurav-prasanna/contentlens/core/config"
	"github.com/gaurav-prasanna/contentlens/core/convert"
	"github.com/gaurav-prasanna/contentlens/core/extract"
	"github.com/gaurav-prasanna/contentlens/core/media"
	"github.com/gaurav-prasanna/contentlens/core/translate"
)

var (
	// ErrRestrictedScheme is returned for browser-internal pages.
	ErrRestrictedScheme = errors.New("cannot extract content from browser-internal page")

	// ErrNoDocument is returned when there is no document root to read.
	ErrNoDocument = errors.New("document root is not accessible")
)

// Document is a parsed page and the URL it was loaded from. URL may be empty
// for documents without a location; relative links then stay relative.
type Document struct {
	Root *html.Node
	URL  string
}

// Pipeline runs extractions. It keeps no per-call state, so one Pipeline can
// serve concurrent calls.
type Pipeline struct {
	locator    core.Locator
	sanitizer  core.Sanitizer
	converter  core.Converter
	media      core.MediaExtractor
	analyzer   core.Analyzer
	prompts    *translate.Builder
	restricted []string
}

// New builds a Pipeline from the configuration tables.
func New(t config.Tables) (*Pipeline, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	locator, err := extract.NewLocator(t.RegionSelectors)
	if err != nil {
		return nil, fmt.Errorf("building locator: %w", err)
	}
	sanitizer, err := extract.NewSanitizer(t.NoiseSelectors)
	if err != nil {
		return nil, fmt.Errorf("building sanitizer: %w", err)
	}
	return &Pipeline{
		locator:    locator,
		sanitizer:  sanitizer,
		converter:  convert.New(),
		media:      media.New(),
		analyzer:   analyze.New(t),
		prompts:    translate.NewBuilder(t),
		restricted: slices.Clone(t.RestrictedSchemes),
	}, nil
}

// CheckURL reports whether extraction may run on a page at rawURL.
func (p *Pipeline) CheckURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	scheme := rawURL
	if i := strings.Index(rawURL, ":"); i >= 0 {
		scheme = rawURL[:i]
	}
	if slices.Contains(p.restricted, strings.ToLower(scheme)) {
		return fmt.Errorf("%w: %s", ErrRestrictedScheme, rawURL)
	}
	return nil
}

// Extract runs every stage on a private copy of the document. The source
// tree is never modified. Only the precondition checks can fail.
func (p *Pipeline) Extract(doc Document, format core.Format) (*core.ExtractionResult, error) {
	if err := p.CheckURL(doc.URL); err != nil {
		return nil, err
	}
	if doc.Root == nil {
		return nil, ErrNoDocument
	}
	var base *url.URL
	if doc.URL != "" {
		if u, err := url.Parse(doc.URL); err == nil {
			base = u
		}
	}
	format = core.ParseFormat(string(format))

	region := p.locator.Locate(doc.Root)
	cleaned := p.sanitizer.Sanitize(region)

	// Conversion and media extraction only read the cleaned tree.
	var (
		content, text string
		bundle        core.MediaBundle
		wg            sync.WaitGroup
	)
	wg.Go(func() {
		text = p.converter.Convert(cleaned, core.FormatText, base)
		if format == core.FormatText {
			content = text
		} else {
			content = p.converter.Convert(cleaned, format, base)
		}
	})
	wg.Go(func() {
		bundle = p.media.Extract(cleaned, base)
	})
	wg.Wait()

	analysis := p.analyzer.Analyze(text)
	log.Debug().
		Str("format", string(format)).
		Int("content_len", len(content)).
		Str("topic", analysis.Topic).
		Int("words", analysis.WordCount).
		Msg("extraction complete")

	return &core.ExtractionResult{
		Content:  content,
		Format:   format,
		Media:    bundle,
		Analysis: analysis,
	}, nil
}

// TranslationPrompt builds the translation instruction for content.
func (p *Pipeline) TranslationPrompt(content, targetLang, style string) string {
	return p.prompts.Prompt(content, targetLang, style)
}

// Handle answers a host request. Failures are reported in the envelope,
// never as a Go error.
func (p *Pipeline) Handle(doc Document, req core.Request) core.Response {
	logger := log.With().Str("request_id", uuid.NewString()).Str("action", req.Action).Logger()

	switch req.Action {
	case core.ActionExtract:
		res, err := p.Extract(doc, core.Format(req.Format))
		if err != nil {
			return failure(logger, err)
		}
		logger.Info().Str("url", doc.URL).Str("format", string(res.Format)).Msg("content extracted")
		return core.Response{
			Success:  true,
			Content:  &res.Content,
			Analysis: &res.Analysis,
			Media:    &res.Media,
		}
	case core.ActionTranslate:
		return core.Response{
			Success: true,
			Prompt:  p.TranslationPrompt(req.Content, req.TargetLang, req.Style),
		}
	default:
		return failure(logger, fmt.Errorf("unsupported action %q", req.Action))
	}
}

func failure(logger zerolog.Logger, err error) core.Response {
	logger.Warn().Err(err).Msg("request failed")
	return core.Response{Success: false, Error: err.Error()}
}
