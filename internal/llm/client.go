// Package llm contains the provider clients that perform one model call per
// pipeline step.
package llm

import (
	"context"

	"github.com/mfateev/project-planner/internal/models"
)

// LLMClient performs a single, non-streaming model call.
type LLMClient interface {
	Call(ctx context.Context, request LLMRequest) (LLMResponse, error)
}

// OutputSchema asks the provider to constrain the answer to a JSON schema.
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any
}

// LLMRequest is one step's model call.
type LLMRequest struct {
	ModelConfig  models.ModelConfig
	Instructions string // system prompt (role, goal, backstory)
	Prompt       string // user message (task, context, schema)
	OutputSchema *OutputSchema
}

// TokenUsage reports token counts when the provider returns them.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// LLMResponse is the text answer of a call.
type LLMResponse struct {
	Content    string
	ResponseID string
	Usage      TokenUsage
}
