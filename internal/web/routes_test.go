package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/web/pages"
)

type fakePlanner struct {
	got    models.PipelineInput
	result *crew.Result
	err    error
}

func (f *fakePlanner) Plan(ctx context.Context, input models.PipelineInput) (*crew.Result, error) {
	f.got = input
	return f.result, f.err
}

func newTestServer(t *testing.T, pl *fakePlanner, showSteps bool) *httptest.Server {
	t.Helper()
	p, err := pages.NewPages()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(Router(logger, pl, p, showSteps))
	t.Cleanup(srv.Close)
	return srv
}

func websiteForm() url.Values {
	in := models.DefaultPipelineInput()
	return url.Values{
		"project":              {in.Project},
		"industry":             {in.Industry},
		"objectives":           {in.Objectives},
		"team_members":         {in.TeamMembers},
		"project_requirements": {in.Requirements},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// TestForm_Idle verifies the form is pre-filled and no result is shown.
func TestForm_Idle(t *testing.T) {
	srv := newTestServer(t, &fakePlanner{}, false)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `data-state="idle"`)
	assert.Contains(t, body, `value="Website"`)
	assert.Contains(t, body, `<textarea id="objectives"`)
	assert.Contains(t, body, "Generate Project Plan")
	assert.NotContains(t, body, "Task Breakdown")
}

// TestPlanPost_Succeeded verifies both tables are rendered for the website scenario.
func TestPlanPost_Succeeded(t *testing.T) {
	pl := &fakePlanner{result: &crew.Result{
		Plan: &models.ProjectPlan{
			Tasks:      []models.TaskEstimate{{TaskName: "Design", EstimatedTimeHours: 10, RequiredResources: []string{"Jane"}}},
			Milestones: []models.Milestone{{MilestoneName: "MVP", Tasks: []string{"Design"}}},
		},
		Outputs: []models.StepOutput{{Step: "task_breakdown", Role: "Planner", Text: "1. Design"}},
	}}
	srv := newTestServer(t, pl, true)

	resp, err := http.PostForm(srv.URL+"/plan", websiteForm())
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.DefaultPipelineInput(), pl.got)
	assert.Contains(t, body, `data-state="succeeded"`)
	assert.Contains(t, body, "<h2>Task Breakdown</h2>")
	assert.Contains(t, body, "<h2>Project Milestones</h2>")
	assert.Contains(t, body, "<td>Design</td><td>10</td><td>Jane</td>")
	assert.Contains(t, body, "<td>MVP</td><td>Design</td>")
	assert.Contains(t, body, "Total estimated hours: 10")
	assert.Contains(t, body, "Step outputs")
	assert.NotContains(t, body, "unknown-tasks")
}

// TestPlanPost_EmptyTasks verifies only the milestone table appears.
func TestPlanPost_EmptyTasks(t *testing.T) {
	pl := &fakePlanner{result: &crew.Result{Plan: &models.ProjectPlan{
		Tasks:      []models.TaskEstimate{},
		Milestones: []models.Milestone{{MilestoneName: "Launch", Tasks: []string{"Deploy"}}},
	}}}
	srv := newTestServer(t, pl, false)

	resp, err := http.PostForm(srv.URL+"/plan", websiteForm())
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.NotContains(t, body, "Task Breakdown")
	assert.Contains(t, body, "Project Milestones")
	assert.Contains(t, body, `id="unknown-tasks"`)
	assert.NotContains(t, body, "Step outputs")
}

// TestPlanPost_SchemaFailure verifies the raw model output is shown.
func TestPlanPost_SchemaFailure(t *testing.T) {
	pl := &fakePlanner{err: &models.SchemaValidationError{Raw: "not json", Err: errors.New("no JSON object found")}}
	srv := newTestServer(t, pl, false)

	resp, err := http.PostForm(srv.URL+"/plan", websiteForm())
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, `data-state="failed"`)
	assert.Contains(t, body, `<pre id="raw">not json</pre>`)
	assert.NotContains(t, body, "<h2>Task Breakdown</h2>")
}

// TestPlanPost_UpstreamFailure verifies the failure kind is reported.
func TestPlanPost_UpstreamFailure(t *testing.T) {
	pl := &fakePlanner{err: &models.UpstreamServiceError{
		Step: "time_resource_estimation", Kind: models.UpstreamRateLimit, StatusCode: 429, Err: errors.New("slow down"),
	}}
	srv := newTestServer(t, pl, false)

	resp, err := http.PostForm(srv.URL+"/plan", websiteForm())
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body, "(rate_limit)")
	assert.Contains(t, body, "time_resource_estimation")
	assert.NotContains(t, body, `id="raw"`)
}

// TestPlanPost_FreeTextFields verifies arbitrary and empty values are passed through.
func TestPlanPost_FreeTextFields(t *testing.T) {
	pl := &fakePlanner{result: &crew.Result{Plan: &models.ProjectPlan{}}}
	srv := newTestServer(t, pl, false)

	resp, err := http.Post(srv.URL+"/plan", "application/x-www-form-urlencoded",
		strings.NewReader("project=%3Cb%3Eapp%3C%2Fb%3E&industry="))
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, "<b>app</b>", pl.got.Project)
	assert.Empty(t, pl.got.Industry)
	assert.Contains(t, body, "&lt;b&gt;app&lt;/b&gt;")
}

// TestPlanPost_MultiLineObjectives verifies newlines in objectives survive the round trip.
func TestPlanPost_MultiLineObjectives(t *testing.T) {
	pl := &fakePlanner{result: &crew.Result{Plan: &models.ProjectPlan{}}}
	srv := newTestServer(t, pl, false)

	form := websiteForm()
	form.Set("objectives", "Launch the site\nReach 1k users")
	resp, err := http.PostForm(srv.URL+"/plan", form)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, "Launch the site\nReach 1k users", pl.got.Objectives)
	assert.Contains(t, body, ">Launch the site\nReach 1k users</textarea>")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &fakePlanner{}, false)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, "ok", readBody(t, resp))
}
