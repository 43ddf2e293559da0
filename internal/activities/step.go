// Package activities contains the Temporal activities run by the planner
// worker.
package activities

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/mfateev/project-planner/internal/instructions"
	"github.com/mfateev/project-planner/internal/llm"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/plan"
)

// RunStepInput is the input for the RunStep activity. Step has its templates
// already filled in; Context holds the outputs of the earlier steps in order.
type RunStepInput struct {
	Step        models.StepSpec     `json:"step"`
	Context     []models.StepOutput `json:"context,omitempty"`
	ModelConfig models.ModelConfig  `json:"model_config"`
}

// RunStepOutput is the output from the RunStep activity.
type RunStepOutput struct {
	Text  string         `json:"text"`
	Usage llm.TokenUsage `json:"usage"`
}

// StepActivities runs single pipeline steps against a model provider.
// Credentials live in the client; they never travel through workflow history.
type StepActivities struct {
	client llm.LLMClient
}

// NewStepActivities creates a new StepActivities instance.
func NewStepActivities(client llm.LLMClient) *StepActivities {
	return &StepActivities{client: client}
}

// RunStep sends one step to the model and returns its text. Upstream failures
// are returned as non-retryable application errors of type
// UpstreamServiceError carrying the failure kind and HTTP status.
func (a *StepActivities) RunStep(ctx context.Context, input RunStepInput) (RunStepOutput, error) {
	logger := activity.GetLogger(ctx)

	request, err := BuildStepRequest(input.Step, input.Context, input.ModelConfig)
	if err != nil {
		return RunStepOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), models.ErrTypeConfig, err)
	}

	logger.Info("Running step",
		"step", input.Step.Name,
		"role", input.Step.Role.Role,
		"model", input.ModelConfig.Model,
		"context_steps", len(input.Context))

	resp, err := a.client.Call(ctx, request)
	if err != nil {
		logger.Warn("Step failed", "step", input.Step.Name, "error", err)
		return RunStepOutput{}, UpstreamApplicationError(input.Step.Name, err)
	}

	logger.Info("Step completed",
		"step", input.Step.Name,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"preview", instructions.Preview(resp.Content, 120))

	return RunStepOutput{Text: resp.Content, Usage: resp.Usage}, nil
}

// BuildStepRequest turns a rendered step and its context into a model request.
// The structured step carries the ProjectPlan schema both in the prompt and as
// the provider-side output format.
func BuildStepRequest(step models.StepSpec, prior []models.StepOutput, cfg models.ModelConfig) (llm.LLMRequest, error) {
	request := llm.LLMRequest{
		ModelConfig:  cfg,
		Instructions: instructions.RoleInstructions(step.Role),
	}
	if !step.Structured {
		request.Prompt = instructions.StepPrompt(step, prior, "")
		return request, nil
	}

	schemaJSON, err := plan.SchemaJSON()
	if err != nil {
		return llm.LLMRequest{}, fmt.Errorf("project plan schema: %w", err)
	}
	schemaMap, err := plan.SchemaMap()
	if err != nil {
		return llm.LLMRequest{}, fmt.Errorf("project plan schema: %w", err)
	}
	request.Prompt = instructions.StepPrompt(step, prior, schemaJSON)
	request.OutputSchema = &llm.OutputSchema{
		Name:        plan.SchemaName,
		Description: "Tasks with hour estimates and the milestones that group them",
		Schema:      schemaMap,
	}
	return request, nil
}

// UpstreamApplicationError converts a provider error into a non-retryable
// Temporal application error. Details are the kind and the HTTP status code.
func UpstreamApplicationError(step string, err error) error {
	var use *models.UpstreamServiceError
	if !errors.As(err, &use) {
		use = &models.UpstreamServiceError{Kind: models.UpstreamTransient, Err: err}
	}
	if use.Step == "" {
		use.Step = step
	}
	return temporal.NewNonRetryableApplicationError(use.Error(), models.ErrTypeUpstreamService, use,
		string(use.Kind), use.StatusCode)
}
