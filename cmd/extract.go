// Package cmd: extract command.
// This is the main command that orchestrates the pipeline:
// fetch → locate → sanitize → convert/media → analyze → render → write.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/output"
	"github.com/gaurav-prasanna/contentlens/core/render"
)

// Flag variables.
var (
	flagJSON      bool
	flagRaw       bool
	flagPDF       bool
	flagOutputDir string
)

var extractCmd = &cobra.Command{
	Use:   "extract <url|file>",
	Short: "Extract the main content of a page",
	Long: `Extract fetches a web page (or reads a local HTML file), locates its main
content, removes noise, and renders it in the requested format together with
the page's media and a content analysis.

By default the JSON response envelope is printed to stdout. With --output_dir
(or --pdf) the output is written to a file instead.

Examples:
  contentlens extract https://example.com/post
  contentlens extract https://example.com/post --format markdown --raw
  contentlens extract ./page.html --pdf --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().String("format", "text", "content format: text, markdown or html")
	_ = v.BindPFlag("format", extractCmd.Flags().Lookup("format"))

	// Output format flags (mutually exclusive).
	extractCmd.Flags().BoolVar(&flagJSON, "json", false, "Output the JSON response envelope (default)")
	extractCmd.Flags().BoolVar(&flagRaw, "raw", false, "Output only the converted content")
	extractCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a PDF of the content")

	extractCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: print to stdout)")
	extractCmd.Flags().String("font", "", "UTF-8 TrueType font for PDF output")
	_ = v.BindPFlag("font", extractCmd.Flags().Lookup("font"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	src := args[0]

	renderer, err := selectRenderer(core.ParseFormat(cfg.Format))
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}

	doc, meta, err := loadDocument(cmd.Context(), p, newFetcher(), src)
	if err != nil {
		return err
	}

	result, err := p.Extract(doc, core.Format(cfg.Format))
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	data, err := renderer.Render(result, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	outputDir := flagOutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" && !flagPDF {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}

	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(meta, data, renderer.Extension())
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("written")
	return nil
}

// selectRenderer creates the Renderer chosen by the output flags.
func selectRenderer(format core.Format) (core.Renderer, error) {
	count := 0
	for _, set := range []bool{flagJSON, flagRaw, flagPDF} {
		if set {
			count++
		}
	}
	if count > 1 {
		return nil, fmt.Errorf("only one of --json, --raw or --pdf allowed per run (got %d)", count)
	}

	switch {
	case flagRaw:
		return render.NewContentRenderer(format), nil
	case flagPDF:
		return render.NewPDFRenderer(cfg.FontPath), nil
	default:
		return render.NewJSONRenderer(), nil
	}
}
