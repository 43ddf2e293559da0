package instructions

import (
	"strings"
	"unicode/utf8"

	"github.com/mfateev/project-planner/internal/models"
)

// StepPrompt builds the user message for one step: the task, the expected
// result, the outputs of earlier steps and, for the structured step, the JSON
// schema the answer must satisfy. An empty schemaJSON means free text.
func StepPrompt(step models.StepSpec, prior []models.StepOutput, schemaJSON string) string {
	var b strings.Builder

	b.WriteString("Current Task: ")
	b.WriteString(strings.TrimSpace(step.Description))
	b.WriteString("\n\n")

	b.WriteString("This is the expected criteria for your final answer: ")
	b.WriteString(strings.TrimSpace(step.ExpectedOutput))
	b.WriteString("\n")

	if len(prior) > 0 {
		b.WriteString("\nThis is the context you're working with:\n")
		for _, out := range prior {
			b.WriteString("\n## ")
			b.WriteString(out.Step)
			if out.Role != "" {
				b.WriteString(" (")
				b.WriteString(out.Role)
				b.WriteString(")")
			}
			b.WriteString("\n")
			b.WriteString(strings.TrimSpace(out.Text))
			b.WriteString("\n")
		}
	}

	if schemaJSON != "" {
		b.WriteString("\n")
		b.WriteString(StructuredOutputInstructions)
		b.WriteString("\n")
		b.WriteString(schemaJSON)
		b.WriteString("\n")
	}

	return b.String()
}

// StructuredOutputInstructions precedes the schema on the terminal step.
const StructuredOutputInstructions = `Your final answer MUST be a single JSON object that validates against the schema below.
Do not wrap it in prose. Every task referenced by a milestone must use the exact task_name of a task in "tasks".
Estimated hours are non-negative numbers.`

// Preview truncates s to at most n bytes, never splitting a rune, with "..."
// appended if it was longer. Used for log lines about step outputs.
func Preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
