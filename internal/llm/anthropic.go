// Package llm wraps the external generation service: one single-turn
// completion call per answer, no streaming, no conversation state.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// Client issues completions against the Anthropic messages API through
// langchaingo.
type Client struct {
	llm   *anthropic.LLM
	model string
}

func New(apiKey, model string) (*Client, error) {
	llm, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing anthropic client: %w", err)
	}
	return &Client{llm: llm, model: model}, nil
}

// Generate runs one user-role completion and returns the response text.
// Transport failures propagate to the caller; no retry at this layer.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}
