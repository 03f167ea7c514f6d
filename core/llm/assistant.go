// Package llm talks to an OpenAI-compatible chat endpoint to summarize and
// translate extracted content.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/gaurav-prasanna/contentlens/core/config"
)

// DefaultSummaryPrompt is the system prompt used when none is given.
const DefaultSummaryPrompt = "你是一个专业的文本总结助手。请对提供的文本进行简洁的总结，突出重点内容。"

const summaryRequest = "请总结以下内容：\n"

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("llm api key not configured (set llm.api_key or CONTENTLENS_LLM_API_KEY)")

// Client is the subset of the go-openai client the assistant needs.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewClient builds a go-openai client for the configured endpoint.
func NewClient(cfg config.LLMConfig) (*openai.Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(c), nil
}

// Assistant sends summary and translation requests.
type Assistant struct {
	Client      Client
	Model       string
	Temperature float32
}

// NewAssistant creates an Assistant using the model settings of cfg.
func NewAssistant(client Client, cfg config.LLMConfig) *Assistant {
	return &Assistant{Client: client, Model: cfg.Model, Temperature: cfg.Temperature}
}

// Summarize asks the model for a summary of content. An empty system prompt
// selects DefaultSummaryPrompt.
func (a *Assistant) Summarize(ctx context.Context, content, systemPrompt string) (string, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSummaryPrompt
	}
	out, err := a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: summaryRequest + content},
	})
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	return out, nil
}

// Translate sends a prompt built by the translate package.
func (a *Assistant) Translate(ctx context.Context, prompt string) (string, error) {
	out, err := a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("translating: %w", err)
	}
	return out, nil
}

func (a *Assistant) complete(ctx context.Context, msgs []openai.ChatCompletionMessage) (string, error) {
	log.Debug().Str("model", a.Model).Int("messages", len(msgs)).Msg("chat completion")
	resp, err := a.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.Model,
		Messages:    msgs,
		Temperature: a.Temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
