package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// defaultAnthropicMaxTokens is used when the model config leaves MaxTokens
// unset; the Messages API requires a value.
const defaultAnthropicMaxTokens = 4096

// AnthropicClient calls the Anthropic Messages API. The Messages API has no
// strict schema mode here, so structured steps rely on the schema embedded in
// the prompt and on coercion of the answer.
type AnthropicClient struct {
	client anthropic.Client
}

// NewAnthropicClient creates a client with an explicit API key and SDK
// retries disabled.
func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *AnthropicClient {
	base := []option.RequestOption{option.WithMaxRetries(0)}
	if apiKey != "" {
		base = append(base, option.WithAPIKey(apiKey))
	}
	return &AnthropicClient{client: anthropic.NewClient(append(base, opts...)...)}
}

// Call sends the request and concatenates the text blocks of the answer.
func (c *AnthropicClient) Call(ctx context.Context, request LLMRequest) (LLMResponse, error) {
	msg, err := c.client.Messages.New(ctx, c.buildParams(request))
	if err != nil {
		return LLMResponse{}, classifyError(err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return LLMResponse{
		Content:    b.String(),
		ResponseID: msg.ID,
		Usage: TokenUsage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}, nil
}

func (c *AnthropicClient) buildParams(request LLMRequest) anthropic.MessageNewParams {
	cfg := request.ModelConfig
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(cfg.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.Prompt)),
		},
	}
	if request.Instructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: request.Instructions}}
	}
	if cfg.Temperature > 0 {
		params.Temperature = anthropic.Float(cfg.Temperature)
	}
	return params
}
