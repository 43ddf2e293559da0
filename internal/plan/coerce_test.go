package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfateev/project-planner/internal/models"
)

const websitePlan = `{"tasks":[{"task_name":"Design mockups","estimated_time_hours":8.0,"required_resources":["Designer"]}],"milestones":[{"milestone_name":"Design complete","tasks":["Design mockups"]}]}`

// --- Tests for Coerce ---

// TestCoerce_ValidPlan verifies a well-formed terminal output becomes a plan.
func TestCoerce_ValidPlan(t *testing.T) {
	p, err := Coerce(websitePlan)
	require.NoError(t, err)

	require.Len(t, p.Tasks, 1)
	assert.Equal(t, "Design mockups", p.Tasks[0].TaskName)
	assert.InDelta(t, 8.0, p.Tasks[0].EstimatedTimeHours, 0.0001)
	assert.Equal(t, []string{"Designer"}, p.Tasks[0].RequiredResources)

	require.Len(t, p.Milestones, 1)
	assert.Equal(t, "Design complete", p.Milestones[0].MilestoneName)
	assert.Equal(t, []string{"Design mockups"}, p.Milestones[0].Tasks)
}

// TestCoerce_Idempotent verifies re-parsing the same text yields an equal plan.
func TestCoerce_Idempotent(t *testing.T) {
	first, err := Coerce(websitePlan)
	require.NoError(t, err)
	second, err := Coerce(websitePlan)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestCoerce_FencedOutput verifies a markdown code fence around the JSON is tolerated.
func TestCoerce_FencedOutput(t *testing.T) {
	text := "Here is the plan:\n```json\n" + websitePlan + "\n```\nLet me know if you need changes."
	p, err := Coerce(text)
	require.NoError(t, err)
	assert.Len(t, p.Tasks, 1)
}

// TestCoerce_SurroundingProse verifies prose around a bare JSON object is tolerated.
func TestCoerce_SurroundingProse(t *testing.T) {
	p, err := Coerce("Final Answer: " + websitePlan + " -- done")
	require.NoError(t, err)
	assert.Len(t, p.Milestones, 1)
}

// TestCoerce_EmptyCollections verifies empty tasks and milestones are valid.
func TestCoerce_EmptyCollections(t *testing.T) {
	p, err := Coerce(`{"tasks":[],"milestones":[]}`)
	require.NoError(t, err)
	assert.Empty(t, p.Tasks)
	assert.Empty(t, p.Milestones)
}

func TestCoerce_Failures(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"not json", "not json"},
		{"empty", ""},
		{"truncated", `{"tasks":[{"task_name":"x"`},
		{"missing milestones", `{"tasks":[]}`},
		{"missing task field", `{"tasks":[{"task_name":"x","required_resources":[]}],"milestones":[]}`},
		{"negative hours", `{"tasks":[{"task_name":"x","estimated_time_hours":-1,"required_resources":[]}],"milestones":[]}`},
		{"hours as string", `{"tasks":[{"task_name":"x","estimated_time_hours":"8","required_resources":[]}],"milestones":[]}`},
		{"milestone task not a string", `{"tasks":[],"milestones":[{"milestone_name":"m","tasks":[1]}]}`},
		{"unknown property", `{"tasks":[],"milestones":[],"notes":"extra"}`},
		{"null tasks", `{"tasks":null,"milestones":[]}`},
		{"null milestones", `{"tasks":[],"milestones":null}`},
		{"null required resources", `{"tasks":[{"task_name":"x","estimated_time_hours":1,"required_resources":null}],"milestones":[]}`},
		{"null milestone tasks", `{"tasks":[],"milestones":[{"milestone_name":"m","tasks":null}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Coerce(tc.text)
			require.Error(t, err)
			assert.Nil(t, p, "no partial plan may be returned")

			var sve *models.SchemaValidationError
			require.True(t, errors.As(err, &sve))
			assert.Equal(t, tc.text, sve.Raw)
		})
	}
}

// --- Tests for the schema ---

// TestSchemaMap_Shape verifies the wire schema is closed and requires both collections.
func TestSchemaMap_Shape(t *testing.T) {
	m, err := SchemaMap()
	require.NoError(t, err)

	assert.Contains(t, m, "additionalProperties")
	required, ok := m["required"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"tasks", "milestones"}, required)

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "tasks")
	assert.Contains(t, props, "milestones")
}

func TestSchemaJSON_MentionsFields(t *testing.T) {
	s, err := SchemaJSON()
	require.NoError(t, err)
	for _, field := range []string{"task_name", "estimated_time_hours", "required_resources", "milestone_name"} {
		assert.Contains(t, s, field)
	}
	assert.NotContains(t, s, `"null"`, "list fields must not be nullable")
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONObject("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":{"b":2}}`, extractJSONObject(`x {"a":{"b":2}} y`))
	assert.Equal(t, "", extractJSONObject("no braces here"))
	assert.Equal(t, "", extractJSONObject("} backwards {"))
}
