package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"golang.org/x/sync/errgroup"

	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/log"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/workflow"
)

const (
	DefaultTaskQueue    = "project-planner"
	DefaultPollInterval = 200 * time.Millisecond
)

// workflowClient is the part of client.Client the Temporal planner uses.
type workflowClient interface {
	statusQuerier
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, wf interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// Temporal starts one ProjectPlanWorkflow per call and waits for it. The crew
// is assembled here and sent with the input; credentials stay on the worker.
type Temporal struct {
	Client       workflowClient
	TaskQueue    string
	Crew         *crew.Crew
	Model        models.ModelConfig
	StepTimeout  time.Duration
	PollInterval time.Duration
	// OnStatus, when set, receives status updates polled from the workflow.
	OnStatus crew.Observer
}

// NewTemporal creates a Temporal planner over an open client.
func NewTemporal(c client.Client, taskQueue string, cr *crew.Crew, model models.ModelConfig, stepTimeout time.Duration) *Temporal {
	return &Temporal{
		Client:      c,
		TaskQueue:   taskQueue,
		Crew:        cr,
		Model:       model,
		StepTimeout: stepTimeout,
	}
}

func (t *Temporal) Plan(ctx context.Context, input models.PipelineInput) (*crew.Result, error) {
	logger := log.FromContext(ctx)

	taskQueue := t.TaskQueue
	if taskQueue == "" {
		taskQueue = DefaultTaskQueue
	}
	interval := t.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	workflowID := "project-plan-" + uuid.New().String()
	run, err := t.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, workflow.ProjectPlanWorkflow, workflow.WorkflowInput{
		Crew:        *t.Crew,
		Input:       input,
		ModelConfig: t.Model,
		StepTimeout: t.StepTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start workflow: %w", err)
	}
	logger.Info("Workflow started", "workflow_id", workflowID, "run_id", run.GetRunID())

	poller := NewPoller(t.Client, workflowID, interval)
	g, gctx := errgroup.WithContext(ctx)
	pollCtx, stopPolling := context.WithCancel(gctx)
	defer stopPolling()

	if t.OnStatus != nil {
		g.Go(func() error {
			poller.RunPolling(pollCtx, t.OnStatus)
			return nil
		})
	}

	var result workflow.WorkflowResult
	g.Go(func() error {
		defer stopPolling()
		return run.Get(gctx, &result)
	})

	waitErr := g.Wait()
	if t.OnStatus != nil {
		if status, err := poller.Poll(ctx); err == nil {
			t.OnStatus(status)
		}
	}
	if waitErr != nil {
		logger.Warn("Workflow failed", "workflow_id", workflowID, "error", waitErr)
		return nil, FromWorkflowError(waitErr)
	}
	return &crew.Result{Plan: &result.Plan, Outputs: result.Outputs}, nil
}

// FromWorkflowError recovers the typed error from a failed workflow. Errors
// without a known application error type are returned wrapped.
func FromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return fmt.Errorf("project plan workflow: %w", err)
	}

	msg := errors.New(appErr.Message())
	switch appErr.Type() {
	case models.ErrTypeSchemaValidation:
		var raw string
		_ = appErr.Details(&raw)
		return &models.SchemaValidationError{Raw: raw, Err: msg}
	case models.ErrTypeUpstreamService:
		var kind string
		var status int
		if appErr.Details(&kind, &status) != nil {
			kind = string(models.UpstreamFatal)
		}
		return &models.UpstreamServiceError{Kind: models.UpstreamKind(kind), StatusCode: status, Err: msg}
	case models.ErrTypeConfig:
		return &models.ConfigError{Err: msg}
	default:
		return fmt.Errorf("project plan workflow: %w", err)
	}
}
