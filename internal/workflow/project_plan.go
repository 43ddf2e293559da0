// Package workflow contains Temporal workflow definitions.
//
// project_plan.go hosts the three-step planning pipeline: each step runs as
// one RunStep activity, in order, and the terminal output becomes the plan.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/mfateev/project-planner/internal/activities"
	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/models"
)

const (
	// QueryGetRunStatus returns the current models.RunStatus.
	QueryGetRunStatus = "get_run_status"

	// DefaultStepTimeout bounds a single model call when the input leaves
	// StepTimeout unset.
	DefaultStepTimeout = 5 * time.Minute
)

// WorkflowInput is the input to ProjectPlanWorkflow. Crew is assembled by the
// starter so the worker never reads configuration files during replay.
type WorkflowInput struct {
	Crew        crew.Crew            `json:"crew"`
	Input       models.PipelineInput `json:"input"`
	ModelConfig models.ModelConfig   `json:"model_config"`
	StepTimeout time.Duration        `json:"step_timeout,omitempty"`
}

// WorkflowResult is the successful outcome of ProjectPlanWorkflow.
type WorkflowResult struct {
	Plan    models.ProjectPlan  `json:"plan"`
	Outputs []models.StepOutput `json:"outputs"`
}

// ProjectPlanWorkflow runs the crew once. Model calls are never retried: each
// activity gets a single attempt. Failures surface as non-retryable
// application errors typed ConfigError, UpstreamServiceError or
// SchemaValidationError (the latter with the raw terminal text as details).
func ProjectPlanWorkflow(ctx workflow.Context, input WorkflowInput) (WorkflowResult, error) {
	logger := workflow.GetLogger(ctx)

	status := models.RunStatus{State: models.RunStateIdle}
	if err := workflow.SetQueryHandler(ctx, QueryGetRunStatus, func() (models.RunStatus, error) {
		return status, nil
	}); err != nil {
		return WorkflowResult{}, fmt.Errorf("register %s query: %w", QueryGetRunStatus, err)
	}

	timeout := input.StepTimeout
	if timeout <= 0 {
		timeout = DefaultStepTimeout
	}
	actCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: timeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	runStep := func(req crew.StepRequest) (string, error) {
		var out activities.RunStepOutput
		err := workflow.ExecuteActivity(actCtx, "RunStep", activities.RunStepInput{
			Step:        req.Step,
			Context:     req.Context,
			ModelConfig: input.ModelConfig,
		}).Get(ctx, &out)
		if err != nil {
			return "", err
		}
		logger.Info("Step completed", "step", req.Step.Name, "output_tokens", out.Usage.OutputTokens)
		return out.Text, nil
	}

	logger.Info("Project plan started", "project", input.Input.Project, "model", input.ModelConfig.Model)

	result, err := input.Crew.Kickoff(input.Input, runStep, func(s models.RunStatus) {
		status = s
	})
	if err != nil {
		logger.Warn("Project plan failed", "error", err)
		return WorkflowResult{}, toApplicationError(err)
	}

	logger.Info("Project plan completed",
		"tasks", len(result.Plan.Tasks),
		"milestones", len(result.Plan.Milestones))
	return WorkflowResult{Plan: *result.Plan, Outputs: result.Outputs}, nil
}

// toApplicationError gives every pipeline failure a stable application error
// type so callers can recover the typed error on the other side.
func toApplicationError(err error) error {
	var schemaErr *models.SchemaValidationError
	if errors.As(err, &schemaErr) {
		return temporal.NewNonRetryableApplicationError(err.Error(), models.ErrTypeSchemaValidation, nil, schemaErr.Raw)
	}
	var cfgErr *models.ConfigError
	var appErr *temporal.ApplicationError
	if errors.As(err, &cfgErr) || (errors.As(err, &appErr) && appErr.Type() == models.ErrTypeConfig) {
		return temporal.NewNonRetryableApplicationError(err.Error(), models.ErrTypeConfig, nil)
	}
	kind, statusCode := models.UpstreamFatal, 0
	var timeoutErr *temporal.TimeoutError
	switch {
	case errors.As(err, &appErr) && appErr.Type() == models.ErrTypeUpstreamService:
		var k string
		if appErr.Details(&k, &statusCode) == nil {
			kind = models.UpstreamKind(k)
		}
	case errors.As(err, &timeoutErr):
		kind = models.UpstreamTransient
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), models.ErrTypeUpstreamService, nil,
		string(kind), statusCode)
}
