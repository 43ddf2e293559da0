// Package web serves the planner form over HTTP.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mfateev/project-planner/internal/planner"
	"github.com/mfateev/project-planner/internal/web/handler"
	"github.com/mfateev/project-planner/internal/web/middleware"
	"github.com/mfateev/project-planner/internal/web/pages"
)

// Router wires the planner routes. showSteps adds the intermediate step
// outputs under the result tables.
func Router(logger *slog.Logger, pl planner.Planner, p *pages.Pages, showSteps bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogger(logger))

	r.Get("/", handler.Form(p))
	r.Post("/plan", handler.PlanPost(pl, p, showSteps))
	r.Get("/healthz", handler.Healthz())

	return r
}
