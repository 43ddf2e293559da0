package planner

import (
	"context"
	"errors"
	"time"

	"github.com/mfateev/project-planner/internal/activities"
	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/instructions"
	"github.com/mfateev/project-planner/internal/llm"
	"github.com/mfateev/project-planner/internal/log"
	"github.com/mfateev/project-planner/internal/models"
)

// Local runs the crew synchronously in the calling goroutine.
type Local struct {
	Crew        *crew.Crew
	Client      llm.LLMClient
	Model       models.ModelConfig
	StepTimeout time.Duration
	// OnStatus, when set, receives every status transition.
	OnStatus crew.Observer
}

func (l *Local) Plan(ctx context.Context, input models.PipelineInput) (*crew.Result, error) {
	logger := log.FromContext(ctx)

	run := func(req crew.StepRequest) (string, error) {
		request, err := activities.BuildStepRequest(req.Step, req.Context, l.Model)
		if err != nil {
			return "", err
		}

		stepCtx := ctx
		if l.StepTimeout > 0 {
			var cancel context.CancelFunc
			stepCtx, cancel = context.WithTimeout(ctx, l.StepTimeout)
			defer cancel()
		}

		logger.Info("Running step", "step", req.Step.Name, "model", l.Model.Model)
		resp, err := l.Client.Call(stepCtx, request)
		if err != nil {
			var use *models.UpstreamServiceError
			if errors.As(err, &use) && use.Step == "" {
				use.Step = req.Step.Name
			}
			return "", err
		}

		logger.Debug("Step completed",
			"step", req.Step.Name,
			"output_tokens", resp.Usage.OutputTokens,
			"preview", instructions.Preview(resp.Content, 120))
		if l.Crew.Verbose[req.Step.Name] {
			logger.Info("Step output", "step", req.Step.Name, "text", resp.Content)
		}
		return resp.Content, nil
	}

	return l.Crew.Kickoff(input, run, l.OnStatus)
}
