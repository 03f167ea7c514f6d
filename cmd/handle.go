// Package cmd: handle command.
// Answers one host request read as JSON from stdin, the same exchange the
// messaging layer performs: {"action":"extract","format":"markdown"} in,
// {"success":true,"content":...} out.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/pipeline"
)

var handleCmd = &cobra.Command{
	Use:   "handle [url|file]",
	Short: "Answer a JSON request read from stdin",
	Long: `Handle reads a request envelope from stdin and writes the response envelope
to stdout. Extract requests need a page argument; translate requests do not.
Failures, including a malformed request, are written as {"success":false,"error":...}.

Examples:
  echo '{"action":"extract","format":"markdown"}' | contentlens handle https://example.com
  echo '{"action":"translate","content":"hello","targetLang":"ja"}' | contentlens handle`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHandle,
}

func init() {
	rootCmd.AddCommand(handleCmd)
}

func runHandle(cmd *cobra.Command, args []string) error {
	resp := handleRequest(cmd.Context(), cmd.InOrStdin(), args, newPipeline, newFetcher())

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// handleRequest answers one request read from in. Every failure, including
// an undecodable request, is reported in the response envelope.
func handleRequest(ctx context.Context, in io.Reader, args []string, build func() (*pipeline.Pipeline, error), fetcher core.Fetcher) core.Response {
	var req core.Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("decoding request")
		return failure(fmt.Errorf("decoding request: %w", err))
	}
	if req.Action == "" {
		req.Action = core.ActionExtract
	}

	p, err := build()
	if err != nil {
		return failure(err)
	}

	switch {
	case req.Action != core.ActionExtract:
		return p.Handle(pipeline.Document{}, req)
	case len(args) == 0:
		return core.Response{Success: false, Error: "extract request needs a page argument"}
	}

	doc, _, err := loadDocument(ctx, p, fetcher, args[0])
	if err != nil {
		return failure(err)
	}
	return p.Handle(doc, req)
}

func failure(err error) core.Response {
	return core.Response{Success: false, Error: err.Error()}
}
