package models

import "strings"

// Provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// ModelConfig selects the model used for every step of a run.
type ModelConfig struct {
	Provider    string  `json:"provider,omitempty"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// DefaultModelConfig returns the configuration used when nothing else is set.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Provider:  ProviderOpenAI,
		Model:     DefaultModel,
		MaxTokens: 4096,
	}
}

// ResolvedProvider returns Provider, inferring it from the model name when unset.
func (c ModelConfig) ResolvedProvider() string {
	if c.Provider != "" {
		return c.Provider
	}
	return DetectProviderFromModel(c.Model)
}

// DetectProviderFromModel infers the provider from the model name.
func DetectProviderFromModel(model string) string {
	if strings.HasPrefix(model, "claude") {
		return ProviderAnthropic
	}
	return ProviderOpenAI
}

// Credentials carries provider API keys. It is built once at startup and
// handed to the LLM clients explicitly.
type Credentials struct {
	OpenAIAPIKey    string `json:"-"`
	AnthropicAPIKey string `json:"-"`
}

// APIKey returns the key for provider, empty when none is configured.
func (c Credentials) APIKey(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	default:
		return ""
	}
}
