// Package cmd: summarize command.
// Extracts a page and asks the configured chat model for a summary.
package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/config"
	"github.com/gaurav-prasanna/contentlens/core/llm"
	"github.com/gaurav-prasanna/contentlens/core/normalize"
)

var (
	flagPreset string
	flagPrompt string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url|file>",
	Short: "Summarize the main content of a page",
	Long: `Summarize extracts the main content of a page, converts it to reading-order
Markdown, and sends it to the configured OpenAI-compatible chat endpoint
(llm.base_url, llm.api_key, llm.model).

The system prompt comes from a summary preset (default, concise, detailed,
creative, academic, or any preset added in the tables file). --prompt sets a
custom prompt and selects the custom preset.

Examples:
  contentlens summarize https://example.com/post
  contentlens summarize https://example.com/post --preset academic
  contentlens summarize ./page.html --prompt "Summarize in three bullet points."`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringVar(&flagPreset, "preset", config.PresetDefault, "summary preset")
	summarizeCmd.Flags().StringVar(&flagPrompt, "prompt", "", "custom system prompt (implies --preset custom)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		return err
	}
	preset := flagPreset
	if flagPrompt != "" && !cmd.Flags().Changed("preset") {
		preset = config.PresetCustom
	}
	prompt, err := tables.SummaryPrompt(preset, flagPrompt)
	if err != nil {
		return err
	}

	// Fail on a missing key before fetching anything.
	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return err
	}

	p, err := pipelineFrom(tables)
	if err != nil {
		return err
	}
	doc, _, err := loadDocument(cmd.Context(), p, newFetcher(), args[0])
	if err != nil {
		return err
	}
	result, err := p.Extract(doc, core.FormatHTML)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	content, err := normalize.New().Normalize(result.Content)
	if errors.Is(err, normalize.ErrEmptyInput) {
		return errors.New("page has no extractable content")
	}
	if err != nil {
		log.Warn().Err(err).Msg("markdown normalization failed; summarizing plain text")
		text, err := p.Extract(doc, core.FormatText)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}
		content = text.Content
	}

	summary, err := llm.NewAssistant(client, cfg.LLM).Summarize(cmd.Context(), content, prompt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
	return err
}
