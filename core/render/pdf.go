// PDF renderer.
// Lays out the extracted content with gofpdf: headings at variable font
// sizes, list items and paragraphs, followed by the analysis summary.
// Core PDF fonts only cover Latin-1; pass a UTF-8 TrueType font for other
// scripts.

package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/contentlens/core"
)

const utf8Family = "contentlens"

var inlineLink = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]+\)`)

// PDFRenderer renders extraction results as a PDF document.
type PDFRenderer struct {
	fontPath string
}

// NewPDFRenderer creates a PDFRenderer. fontPath may name a UTF-8 TrueType
// font; when empty the Helvetica core font is used.
func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{fontPath: fontPath}
}

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

func (w *pdfWriter) font(style string, size float64) {
	if w.family == utf8Family {
		// The UTF-8 font is registered in regular and bold only.
		style = strings.ReplaceAll(style, "I", "")
	}
	w.pdf.SetFont(w.family, style, size)
}

func (w *pdfWriter) cell(h float64, text string) {
	w.pdf.MultiCell(0, h, w.tr(text), "", "L", false)
}

// Render lays out the result content and analysis.
func (r *PDFRenderer) Render(result *core.ExtractionResult, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	w := &pdfWriter{pdf: pdf, family: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if r.fontPath == "" {
		texts := append([]string{meta.Title, meta.URL, result.Content, result.Analysis.Topic}, result.Analysis.Keywords...)
		if !latin1Only(texts...) {
			log.Warn().Msg("content has characters outside Latin-1 that Helvetica cannot show; pass --font with a UTF-8 TrueType font")
		}
	} else {
		pdf.AddUTF8Font(utf8Family, "", r.fontPath)
		pdf.AddUTF8Font(utf8Family, "B", r.fontPath)
		w.family = utf8Family
		w.tr = func(s string) string { return s }
	}
	pdf.AddPage()

	if meta.Title != "" {
		w.font("B", 18)
		w.cell(8, meta.Title)
		pdf.Ln(4)
	}
	if meta.URL != "" {
		w.font("I", 9)
		pdf.SetTextColor(100, 100, 100)
		w.cell(5, "Source: "+meta.URL)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	markdown := result.Format == core.FormatMarkdown
	for _, line := range strings.Split(result.Content, "\n") {
		renderLine(w, line, markdown)
	}

	renderAnalysis(w, result.Analysis)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderLine(w *pdfWriter, line string, markdown bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		w.pdf.Ln(3)
		return
	}
	if !markdown {
		w.font("", 10)
		w.cell(5, trimmed)
		return
	}

	switch {
	case strings.HasPrefix(trimmed, "#"):
		level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
		renderHeading(w, strings.TrimSpace(trimmed[level:]), level)
	case strings.HasPrefix(trimmed, "* "):
		w.font("", 10)
		w.cell(5, "• "+cleanInline(trimmed[2:]))
	default:
		w.font("", 10)
		w.cell(5, cleanInline(trimmed))
	}
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(w *pdfWriter, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	w.pdf.Ln(4)
	w.font("B", size)
	w.pdf.MultiCell(0, size*0.6, w.tr(text), "", "L", false)
	w.pdf.Ln(2)
}

func renderAnalysis(w *pdfWriter, a core.AnalysisResult) {
	w.pdf.Ln(6)
	w.font("B", 11)
	w.cell(6, "Analysis")
	w.font("", 9)
	w.cell(5, "Topic: "+a.Topic)
	if len(a.Keywords) > 0 {
		w.cell(5, "Keywords: "+strings.Join(a.Keywords, ", "))
	}
	w.cell(5, "Words: "+strconv.Itoa(a.WordCount)+", reading time: "+strconv.Itoa(a.ReadingTime)+" min")
}

// latin1Only reports whether every rune of texts is in the Latin-1 range
// covered by the core fonts.
func latin1Only(texts ...string) bool {
	for _, s := range texts {
		for _, r := range s {
			if r > unicode.MaxLatin1 {
				return false
			}
		}
	}
	return true
}

// cleanInline keeps the text of Markdown links and images.
func cleanInline(text string) string {
	return strings.TrimSpace(inlineLink.ReplaceAllString(text, "$1"))
}
