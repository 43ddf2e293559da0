package crew

import (
	"fmt"

	"github.com/mfateev/project-planner/internal/instructions"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/plan"
)

// StepRequest is everything needed to run one step. Step has its templates
// already filled in from the input; Context is a private copy of the outputs
// of all earlier steps.
type StepRequest struct {
	Step    models.StepSpec
	Input   models.PipelineInput
	Context []models.StepOutput
}

// StepFunc performs one step and returns its text. Implementations decide
// where the model call happens (in-process or in a Temporal activity).
type StepFunc func(req StepRequest) (string, error)

// Observer receives every status transition of a run.
type Observer func(models.RunStatus)

// Result is the outcome of a successful run.
type Result struct {
	Plan    *models.ProjectPlan
	Outputs []models.StepOutput
}

// Kickoff runs the steps strictly in order. The first failing step ends the
// run and its error is returned; earlier outputs are discarded. The terminal
// output that does not coerce into a ProjectPlan yields a
// *models.SchemaValidationError.
func (c *Crew) Kickoff(input models.PipelineInput, run StepFunc, observe Observer) (*Result, error) {
	if observe == nil {
		observe = func(models.RunStatus) {}
	}
	vars := input.Variables()

	status := models.RunStatus{State: models.RunStateRunning}
	fail := func(err error) (*Result, error) {
		status.State = models.RunStateFailed
		status.Error = err.Error()
		observe(snapshot(status))
		return nil, err
	}

	var outputs []models.StepOutput
	for _, spec := range c.Steps {
		step, err := Render(spec, vars)
		if err != nil {
			return fail(err)
		}

		status.CurrentStep = step.Name
		observe(snapshot(status))

		text, err := run(StepRequest{
			Step:    step,
			Input:   input,
			Context: append([]models.StepOutput(nil), outputs...),
		})
		if err != nil {
			return fail(fmt.Errorf("step %s: %w", step.Name, err))
		}

		outputs = append(outputs, models.StepOutput{Step: step.Name, Role: step.Role.Role, Text: text})
		status.CompletedSteps = append(status.CompletedSteps, step.Name)

		if !step.Structured {
			continue
		}
		p, err := plan.Coerce(text)
		if err != nil {
			return fail(err)
		}
		status.State = models.RunStateSucceeded
		status.CurrentStep = ""
		observe(snapshot(status))
		return &Result{Plan: p, Outputs: outputs}, nil
	}
	return fail(fmt.Errorf("crew has no structured terminal step"))
}

// Render fills the {variable} placeholders of a step and its role.
func Render(spec models.StepSpec, vars map[string]string) (models.StepSpec, error) {
	var err error
	out := spec
	fields := []*string{&out.Description, &out.ExpectedOutput, &out.Role.Role, &out.Role.Goal, &out.Role.Backstory}
	for _, f := range fields {
		if *f, err = instructions.Interpolate(*f, vars); err != nil {
			return models.StepSpec{}, &models.ConfigError{Key: spec.Name, Err: err}
		}
	}
	return out, nil
}

func snapshot(s models.RunStatus) models.RunStatus {
	s.CompletedSteps = append([]string(nil), s.CompletedSteps...)
	return s
}
