// Package plan owns the ProjectPlan output schema and the coercion of the
// terminal step's text into a validated models.ProjectPlan.
package plan

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mfateev/project-planner/internal/models"
)

// SchemaName is the name the schema is registered under with the model API.
const SchemaName = "project_plan"

var (
	schemaOnce     sync.Once
	schemaValue    *jsonschema.Schema
	schemaResolved *jsonschema.Resolved
	schemaErr      error
)

// Schema returns the JSON schema of models.ProjectPlan: every field required,
// no additional properties, estimated_time_hours >= 0.
func Schema() (*jsonschema.Schema, error) {
	loadSchema()
	return schemaValue, schemaErr
}

// SchemaMap returns the schema as a generic JSON object, the shape provider
// SDKs accept for structured output.
func SchemaMap() (map[string]any, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return m, nil
}

// SchemaJSON returns the indented schema text embedded into prompts.
func SchemaJSON() (string, error) {
	s, err := Schema()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(data), nil
}

func loadSchema() {
	schemaOnce.Do(func() {
		s, err := jsonschema.For[models.ProjectPlan](nil)
		if err != nil {
			schemaErr = fmt.Errorf("infer project plan schema: %w", err)
			return
		}
		s.Description = "Structured project plan with task estimates and milestones"
		closeObject(s)

		tasks, milestones := s.Properties["tasks"], s.Properties["milestones"]
		if tasks == nil || tasks.Items == nil || milestones == nil || milestones.Items == nil {
			schemaErr = fmt.Errorf("infer project plan schema: unexpected shape")
			return
		}
		closeObject(tasks.Items)
		closeObject(milestones.Items)

		resources, milestoneTasks := tasks.Items.Properties["required_resources"], milestones.Items.Properties["tasks"]
		if resources == nil || milestoneTasks == nil {
			schemaErr = fmt.Errorf("infer project plan schema: list fields missing")
			return
		}
		for _, list := range []*jsonschema.Schema{tasks, milestones, resources, milestoneTasks} {
			requireArray(list)
		}

		hours := tasks.Items.Properties["estimated_time_hours"]
		if hours == nil {
			schemaErr = fmt.Errorf("infer project plan schema: estimated_time_hours missing")
			return
		}
		minHours := 0.0
		hours.Minimum = &minHours

		resolved, err := s.Resolve(nil)
		if err != nil {
			schemaErr = fmt.Errorf("resolve project plan schema: %w", err)
			return
		}
		schemaValue, schemaResolved = s, resolved
	})
}

// requireArray makes a slice property non-nullable; inference allows null
// for every slice.
func requireArray(s *jsonschema.Schema) {
	s.Type, s.Types = "array", nil
}

// closeObject forbids properties beyond the declared ones.
func closeObject(s *jsonschema.Schema) {
	s.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
