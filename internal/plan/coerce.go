package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mfateev/project-planner/internal/models"
)

var errNoJSONObject = errors.New("no JSON object found in output")

// Coerce turns the terminal step's text into a validated ProjectPlan.
// Surrounding prose and markdown code fences are tolerated; anything else
// fails with *models.SchemaValidationError and no plan is returned.
func Coerce(text string) (*models.ProjectPlan, error) {
	body := extractJSONObject(text)
	if body == "" {
		return nil, &models.SchemaValidationError{Raw: text, Err: errNoJSONObject}
	}

	var instance any
	if err := json.Unmarshal([]byte(body), &instance); err != nil {
		return nil, &models.SchemaValidationError{Raw: text, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	loadSchema()
	if schemaErr != nil {
		return nil, &models.SchemaValidationError{Raw: text, Err: schemaErr}
	}
	if err := schemaResolved.Validate(instance); err != nil {
		return nil, &models.SchemaValidationError{Raw: text, Err: err}
	}

	var p models.ProjectPlan
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, &models.SchemaValidationError{Raw: text, Err: fmt.Errorf("decode plan: %w", err)}
	}
	return &p, nil
}

// extractJSONObject returns the outermost {...} span of text, looking inside a
// fenced code block first when there is one.
func extractJSONObject(text string) string {
	s := strings.TrimSpace(text)
	if start := strings.Index(s, "```"); start >= 0 {
		rest := s[start+3:]
		// Drop the info string ("json") on the opening fence line.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			s = strings.TrimSpace(rest[:end])
		}
	}
	open := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if open < 0 || end < open {
		return ""
	}
	return s[open : end+1]
}
