// Package gemini wraps the Google GenAI SDK behind a minimal text
// completion surface. This is part of the platform layer; the gateway
// layer adapts it to the orchestration error contract.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Completion is the result of a single text generation call.
type Completion struct {
	Text       string
	TokensUsed int
}

// Client is a thin wrapper over the GenAI SDK.
type Client struct {
	client *genai.Client
}

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: c}, nil
}

// Complete generates text with the given model and token budget. The call
// is bounded by the caller's context deadline.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (*Completion, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
		Temperature:     genai.Ptr[float32](0.4),
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("model %s returned no text candidates", model)
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &Completion{Text: text, TokensUsed: tokens}, nil
}
