package llm

import (
	"context"
	"fmt"

	"github.com/mfateev/project-planner/internal/models"
)

// MultiProviderClient implements LLMClient by dispatching to the appropriate
// provider based on the ModelConfig.Provider field, or the model name when
// the provider is unset.
type MultiProviderClient struct {
	creds     models.Credentials
	openai    LLMClient
	anthropic LLMClient
}

// NewMultiProviderClient creates a client that can dispatch to both providers
// using the given credentials.
func NewMultiProviderClient(creds models.Credentials) *MultiProviderClient {
	return &MultiProviderClient{
		creds:     creds,
		openai:    NewOpenAIClient(creds.OpenAIAPIKey),
		anthropic: NewAnthropicClient(creds.AnthropicAPIKey),
	}
}

// Call dispatches to the provider resolved from the request's model config.
// A provider without a configured key fails with an auth error before any
// request is sent.
func (c *MultiProviderClient) Call(ctx context.Context, request LLMRequest) (LLMResponse, error) {
	provider := request.ModelConfig.ResolvedProvider()
	var client LLMClient
	switch provider {
	case models.ProviderOpenAI:
		client = c.openai
	case models.ProviderAnthropic:
		client = c.anthropic
	default:
		return LLMResponse{}, &models.UpstreamServiceError{
			Kind: models.UpstreamFatal,
			Err:  fmt.Errorf("unsupported LLM provider: %s (supported: openai, anthropic)", provider),
		}
	}
	if c.creds.APIKey(provider) == "" {
		return LLMResponse{}, &models.UpstreamServiceError{
			Kind: models.UpstreamAuth,
			Err:  fmt.Errorf("no API key configured for provider %s (model %s)", provider, request.ModelConfig.Model),
		}
	}
	return client.Call(ctx, request)
}

// NewLLMClient creates the client for a single provider.
//
// For most use cases, prefer NewMultiProviderClient() which can handle both.
func NewLLMClient(provider string, creds models.Credentials) (LLMClient, error) {
	switch provider {
	case models.ProviderOpenAI, "":
		return NewOpenAIClient(creds.OpenAIAPIKey), nil
	case models.ProviderAnthropic:
		return NewAnthropicClient(creds.AnthropicAPIKey), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, anthropic)", provider)
	}
}
