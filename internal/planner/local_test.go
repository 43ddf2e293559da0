package planner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/llm"
	"github.com/mfateev/project-planner/internal/models"
)

const websitePlanJSON = `{"tasks":[{"task_name":"Design","estimated_time_hours":10,"required_resources":["Jane"]}],` +
	`"milestones":[{"milestone_name":"MVP","tasks":["Design"]}]}`

// scriptedClient answers calls with the given responses in order.
type scriptedClient struct {
	mu        sync.Mutex
	responses []string
	failAt    int
	err       error
	requests  []llm.LLMRequest
}

func (s *scriptedClient) Call(ctx context.Context, request llm.LLMRequest) (llm.LLMResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, request)
	i := len(s.requests) - 1
	if s.err != nil && i == s.failAt {
		return llm.LLMResponse{}, s.err
	}
	return llm.LLMResponse{Content: s.responses[i]}, nil
}

func loadCrew(t *testing.T) *crew.Crew {
	t.Helper()
	c, err := crew.Load("", "")
	require.NoError(t, err)
	return c
}

// TestLocalPlan_Succeeds verifies the website scenario end to end in-process.
func TestLocalPlan_Succeeds(t *testing.T) {
	client := &scriptedClient{responses: []string{"breakdown", "estimates", websitePlanJSON}}
	var states []models.RunState
	l := &Local{
		Crew:     loadCrew(t),
		Client:   client,
		Model:    models.DefaultModelConfig(),
		OnStatus: func(s models.RunStatus) { states = append(states, s.State) },
	}

	result, err := l.Plan(context.Background(), models.DefaultPipelineInput())
	require.NoError(t, err)

	require.Len(t, result.Plan.Tasks, 1)
	assert.Equal(t, "Design", result.Plan.Tasks[0].TaskName)
	assert.Len(t, result.Outputs, 3)

	require.Len(t, client.requests, 3)
	assert.Nil(t, client.requests[0].OutputSchema)
	assert.NotNil(t, client.requests[2].OutputSchema)
	assert.Contains(t, client.requests[2].Prompt, "estimates")
	assert.Equal(t, models.RunStateSucceeded, states[len(states)-1])
}

// TestLocalPlan_UpstreamFailure verifies the failing step is named and later steps are skipped.
func TestLocalPlan_UpstreamFailure(t *testing.T) {
	client := &scriptedClient{
		responses: []string{"breakdown", "", ""},
		failAt:    1,
		err:       &models.UpstreamServiceError{Kind: models.UpstreamRateLimit, StatusCode: 429, Err: errors.New("slow down")},
	}
	l := &Local{Crew: loadCrew(t), Client: client, Model: models.DefaultModelConfig()}

	result, err := l.Plan(context.Background(), models.DefaultPipelineInput())
	assert.Nil(t, result)

	var use *models.UpstreamServiceError
	require.ErrorAs(t, err, &use)
	assert.Equal(t, crew.StepTimeResourceEstimation, use.Step)
	assert.Equal(t, models.UpstreamRateLimit, use.Kind)
	assert.Len(t, client.requests, 2)
}

// TestLocalPlan_SchemaFailure verifies malformed terminal output surfaces the raw text.
func TestLocalPlan_SchemaFailure(t *testing.T) {
	client := &scriptedClient{responses: []string{"breakdown", "estimates", "not json"}}
	l := &Local{Crew: loadCrew(t), Client: client, Model: models.DefaultModelConfig()}

	_, err := l.Plan(context.Background(), models.DefaultPipelineInput())

	var sve *models.SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "not json", sve.Raw)
}
