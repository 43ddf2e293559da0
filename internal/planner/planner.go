// Package planner runs the planning crew for the user-facing adapters. Local
// calls the model provider in-process; Temporal hands the run to a worker.
package planner

import (
	"context"

	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/models"
)

// Planner turns one set of form values into a project plan. Errors are one of
// *models.ConfigError, *models.UpstreamServiceError or
// *models.SchemaValidationError, possibly wrapped.
type Planner interface {
	Plan(ctx context.Context, input models.PipelineInput) (*crew.Result, error)
}
