package planner

import (
	"context"
	"time"

	"go.temporal.io/sdk/converter"

	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/workflow"
)

// statusQuerier is the part of client.Client the poller needs.
type statusQuerier interface {
	QueryWorkflow(ctx context.Context, workflowID string, runID string, queryType string, args ...interface{}) (converter.EncodedValue, error)
}

// Poller queries a running workflow for its RunStatus.
type Poller struct {
	client     statusQuerier
	workflowID string
	interval   time.Duration
}

// NewPoller creates a poller for the given workflow.
func NewPoller(c statusQuerier, workflowID string, interval time.Duration) *Poller {
	return &Poller{
		client:     c,
		workflowID: workflowID,
		interval:   interval,
	}
}

// Poll performs a single status query.
func (p *Poller) Poll(ctx context.Context) (models.RunStatus, error) {
	var status models.RunStatus
	resp, err := p.client.QueryWorkflow(ctx, p.workflowID, "", workflow.QueryGetRunStatus)
	if err != nil {
		return status, err
	}
	if err := resp.Get(&status); err != nil {
		return status, err
	}
	return status, nil
}

// RunPolling polls until ctx is cancelled, reporting each status that differs
// from the previous one. Query errors are skipped; the workflow may not have
// started its first task yet.
func (p *Poller) RunPolling(ctx context.Context, observe func(models.RunStatus)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last models.RunStatus
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := p.Poll(ctx)
			if err != nil || sameStatus(last, status) {
				continue
			}
			last = status
			observe(status)
		}
	}
}

func sameStatus(a, b models.RunStatus) bool {
	if a.State != b.State || a.CurrentStep != b.CurrentStep || a.Error != b.Error {
		return false
	}
	if len(a.CompletedSteps) != len(b.CompletedSteps) {
		return false
	}
	for i := range a.CompletedSteps {
		if a.CompletedSteps[i] != b.CompletedSteps[i] {
			return false
		}
	}
	return true
}
