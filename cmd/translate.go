// Package cmd: translate command.
// Builds the translation instruction for a text, and optionally sends it to
// the configured chat model.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/contentlens/core/llm"
)

var (
	flagLang  string
	flagStyle string
	flagSend  bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [file|-]",
	Short: "Build (or run) a translation prompt",
	Long: `Translate reads text from a file or stdin and prints the instruction that asks
a chat model to translate it. With --send the prompt is sent to the configured
OpenAI-compatible endpoint and the translation is printed instead.

Examples:
  contentlens translate --lang en article.txt
  cat article.txt | contentlens translate --lang ja --style keigo --send`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVar(&flagLang, "lang", "", "target language code, e.g. en, ja, fr (required)")
	translateCmd.Flags().StringVar(&flagStyle, "style", "", "style hint, e.g. formal, casual, technical, keigo")
	translateCmd.Flags().BoolVar(&flagSend, "send", false, "send the prompt to the chat model")
	_ = translateCmd.MarkFlagRequired("lang")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	content, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}
	prompt := p.TranslationPrompt(content, flagLang, flagStyle)

	if !flagSend {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return err
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return err
	}
	out, err := llm.NewAssistant(client, cfg.LLM).Translate(cmd.Context(), prompt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
