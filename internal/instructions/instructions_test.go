package instructions

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfateev/project-planner/internal/models"
)

// --- Tests for Interpolate / Placeholders ---

func TestPlaceholders_Distinct(t *testing.T) {
	names := Placeholders("Plan {project_type} for {industry}; {project_type} again, not {1abc} or { x }")
	assert.Equal(t, []string{"project_type", "industry"}, names)
}

func TestPlaceholders_None(t *testing.T) {
	assert.Empty(t, Placeholders("plain text with a JSON-looking {\"a\": 1}"))
}

func TestInterpolate_ReplacesKnown(t *testing.T) {
	out, err := Interpolate("Break down the {project_type} project in {industry}.", map[string]string{
		"project_type": "Website",
		"industry":     "Technology",
	})
	require.NoError(t, err)
	assert.Equal(t, "Break down the Website project in Technology.", out)
}

func TestInterpolate_EmptyValue(t *testing.T) {
	out, err := Interpolate("Team: {team_members}.", map[string]string{"team_members": ""})
	require.NoError(t, err)
	assert.Equal(t, "Team: .", out)
}

func TestInterpolate_UnknownVariable(t *testing.T) {
	_, err := Interpolate("Budget: {budget}", map[string]string{"industry": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
}

// --- Tests for prompt builders ---

func TestRoleInstructions_IncludesRoleGoalBackstory(t *testing.T) {
	prompt := RoleInstructions(models.RoleSpec{
		Name:      "estimation_agent",
		Role:      "Expert Estimation Analyst",
		Goal:      "Estimate time and resources",
		Backstory: "You have estimated hundreds of projects.",
	})

	assert.True(t, strings.HasPrefix(prompt, "You are Expert Estimation Analyst."))
	assert.Contains(t, prompt, "You have estimated hundreds of projects.")
	assert.Contains(t, prompt, "Your personal goal is: Estimate time and resources")
}

func TestStepPrompt_NoContext(t *testing.T) {
	prompt := StepPrompt(models.StepSpec{
		Name:           "task_breakdown",
		Description:    "Break the project down.",
		ExpectedOutput: "A task list.",
	}, nil, "")

	assert.Contains(t, prompt, "Current Task: Break the project down.")
	assert.Contains(t, prompt, "expected criteria for your final answer: A task list.")
	assert.NotContains(t, prompt, "context you're working with")
	assert.NotContains(t, prompt, StructuredOutputInstructions)
}

func TestStepPrompt_ContextInOrder(t *testing.T) {
	prior := []models.StepOutput{
		{Step: "task_breakdown", Role: "Planner", Text: "1. Design"},
		{Step: "time_resource_estimation", Role: "Estimator", Text: "Design: 8h"},
	}
	prompt := StepPrompt(models.StepSpec{Description: "Allocate.", ExpectedOutput: "A plan."}, prior, "")

	first := strings.Index(prompt, "## task_breakdown (Planner)")
	second := strings.Index(prompt, "## time_resource_estimation (Estimator)")
	require.True(t, first >= 0 && second >= 0)
	assert.Less(t, first, second)
	assert.Contains(t, prompt, "Design: 8h")
}

func TestStepPrompt_WithSchema(t *testing.T) {
	prompt := StepPrompt(models.StepSpec{Description: "Allocate."}, nil, `{"type":"object"}`)
	assert.Contains(t, prompt, StructuredOutputInstructions)
	assert.True(t, strings.HasSuffix(prompt, "{\"type\":\"object\"}\n"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "hello", Preview("hello", 10))
	assert.Equal(t, strings.Repeat("a", 5)+"...", Preview(strings.Repeat("a", 8), 5))
}

func TestPreview_MultiByte(t *testing.T) {
	got := Preview("日本語", 4)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "日...", got)

	got = Preview("héllo", 2)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "h...", got)
}
