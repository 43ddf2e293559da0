package llm

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIClient calls the OpenAI Responses API.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates a client with an explicit API key. SDK-level
// retries are disabled; a failed call fails the run.
func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	base := []option.RequestOption{option.WithMaxRetries(0)}
	if apiKey != "" {
		base = append(base, option.WithAPIKey(apiKey))
	}
	return &OpenAIClient{client: openai.NewClient(append(base, opts...)...)}
}

// Call sends the request and returns the aggregated output text.
func (c *OpenAIClient) Call(ctx context.Context, request LLMRequest) (LLMResponse, error) {
	resp, err := c.client.Responses.New(ctx, c.buildParams(request))
	if err != nil {
		return LLMResponse{}, classifyError(err)
	}
	return LLMResponse{
		Content:    resp.OutputText(),
		ResponseID: resp.ID,
		Usage: TokenUsage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}, nil
}

func (c *OpenAIClient) buildParams(request LLMRequest) responses.ResponseNewParams {
	cfg := request.ModelConfig
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(cfg.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(request.Prompt),
		},
		Store: openai.Bool(false),
	}
	if request.Instructions != "" {
		params.Instructions = openai.String(request.Instructions)
	}
	if cfg.Temperature > 0 {
		params.Temperature = openai.Float(cfg.Temperature)
	}
	if cfg.MaxTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(cfg.MaxTokens))
	}
	if s := request.OutputSchema; s != nil {
		format := &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:   s.Name,
			Schema: s.Schema,
			Strict: openai.Bool(true),
		}
		if s.Description != "" {
			format.Description = openai.String(s.Description)
		}
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{OfJSONSchema: format},
		}
	}
	return params
}
