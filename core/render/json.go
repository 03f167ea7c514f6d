// Package render provides output renderers for extraction results.
// This file implements the JSON renderer, which writes the same response
// envelope the host messaging layer receives.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/contentlens/core"
)

// JSONRenderer produces the success envelope as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the result as a success response.
func (r *JSONRenderer) Render(result *core.ExtractionResult, meta core.PageMetadata) ([]byte, error) {
	resp := core.Response{
		Success:  true,
		Content:  &result.Content,
		Analysis: &result.Analysis,
		Media:    &result.Media,
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
