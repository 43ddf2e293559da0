// Package pages renders the planner's HTML pages from embedded templates.
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/present"
)

//go:embed templates/*.html
var Files embed.FS

type Pages struct {
	t *template.Template
}

func NewPages() (*Pages, error) {
	t, err := template.New("pages").
		Funcs(funcMap()).
		ParseFS(Files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Pages{t: t}, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"hours": present.FormatHours,
	}
}

// PlannerParams is everything the planner page shows: the form, the run
// state and either the result tables or the failure.
type PlannerParams struct {
	Input   models.PipelineInput
	State   models.RunState
	Tables  []present.Table
	Outputs []models.StepOutput

	TotalHours   float64
	UnknownTasks []string

	Error     string
	ErrorKind string
	// Raw is the terminal step's text when it could not be parsed.
	Raw string
}

// Planner writes the planner page with the given HTTP status.
func (p *Pages) Planner(w http.ResponseWriter, status int, params PlannerParams) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return p.execute(w, "planner", params)
}

func (p *Pages) execute(w io.Writer, name string, data any) error {
	return p.t.ExecuteTemplate(w, name, data)
}
