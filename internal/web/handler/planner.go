package handler

import (
	"errors"
	"net/http"

	"github.com/mfateev/project-planner/internal/log"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/planner"
	"github.com/mfateev/project-planner/internal/present"
	"github.com/mfateev/project-planner/internal/web/pages"
)

// Form renders the empty planner page pre-filled with the default values.
func Form(p *pages.Pages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := log.FromContext(r.Context()).With("handler", "Form")
		err := p.Planner(w, http.StatusOK, pages.PlannerParams{
			Input: models.DefaultPipelineInput(),
			State: models.RunStateIdle,
		})
		if err != nil {
			l.Error("failed to render", "err", err)
		}
	}
}

// PlanPost runs the planner on the submitted form and renders the result or
// the failure on the same page. The fields are free text and are not
// validated.
func PlanPost(pl planner.Planner, p *pages.Pages, showSteps bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l := log.FromContext(ctx).With("handler", "PlanPost")

		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}
		input := models.PipelineInput{
			Project:      r.FormValue("project"),
			Industry:     r.FormValue("industry"),
			Objectives:   r.FormValue("objectives"),
			TeamMembers:  r.FormValue("team_members"),
			Requirements: r.FormValue("project_requirements"),
		}
		params := pages.PlannerParams{Input: input}

		l.Info("plan requested", "project", input.Project, "industry", input.Industry)
		result, err := pl.Plan(ctx, input)
		if err != nil {
			l.Warn("plan failed", "err", err)
			params.State = models.RunStateFailed
			params.Error = err.Error()
			status := describeFailure(err, &params)
			if rerr := p.Planner(w, status, params); rerr != nil {
				l.Error("failed to render", "err", rerr)
			}
			return
		}

		params.State = models.RunStateSucceeded
		params.Tables = present.Tables(result.Plan)
		params.TotalHours = result.Plan.TotalHours()
		params.UnknownTasks = result.Plan.UnknownMilestoneTasks()
		if showSteps {
			params.Outputs = result.Outputs
		}
		if err := p.Planner(w, http.StatusOK, params); err != nil {
			l.Error("failed to render", "err", err)
		}
	}
}

// describeFailure fills the error panel fields and picks the HTTP status.
func describeFailure(err error, params *pages.PlannerParams) int {
	var sve *models.SchemaValidationError
	var use *models.UpstreamServiceError
	var cfgErr *models.ConfigError
	switch {
	case errors.As(err, &sve):
		params.ErrorKind = "invalid plan"
		params.Raw = sve.Raw
		return http.StatusBadGateway
	case errors.As(err, &use):
		params.ErrorKind = string(use.Kind)
		if use.Kind == models.UpstreamRateLimit {
			return http.StatusTooManyRequests
		}
		return http.StatusBadGateway
	case errors.As(err, &cfgErr):
		params.ErrorKind = "configuration"
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
