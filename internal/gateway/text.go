package gateway

import (
	"context"

	"geoinsight_backend/platform/ai/gemini"
	"geoinsight_backend/platform/logger"
)

const textProviderName = "gemini"

// GeminiTextProvider adapts the platform Gemini client to the gateway
// error contract.
type GeminiTextProvider struct {
	client *gemini.Client
	log    *logger.Logger
}

// NewGeminiTextProvider wraps a Gemini client.
func NewGeminiTextProvider(client *gemini.Client, log *logger.Logger) *GeminiTextProvider {
	return &GeminiTextProvider{client: client, log: log}
}

// Complete generates text under the caller's deadline.
func (p *GeminiTextProvider) Complete(ctx context.Context, model, prompt string, maxTokens int) (*Completion, error) {
	const op = "complete"

	result, err := p.client.Complete(ctx, model, prompt, maxTokens)
	if err != nil {
		p.log.GatewayFailure(textProviderName, op, err)
		if ctx.Err() != nil {
			return nil, wrapTransport(textProviderName, op, ctx.Err())
		}
		return nil, newError(KindUnavailable, textProviderName, op, err)
	}

	return &Completion{Text: result.Text, TokensUsed: result.TokensUsed}, nil
}
