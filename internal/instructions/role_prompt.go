package instructions

import (
	"strings"

	"github.com/mfateev/project-planner/internal/models"
)

// RoleInstructions returns the system prompt for one agent: who it is, its
// background, and the goal it works toward.
func RoleInstructions(role models.RoleSpec) string {
	var b strings.Builder
	b.WriteString("You are ")
	b.WriteString(strings.TrimSpace(role.Role))
	b.WriteString(".")
	if bs := strings.TrimSpace(role.Backstory); bs != "" {
		b.WriteString(" ")
		b.WriteString(bs)
	}
	if goal := strings.TrimSpace(role.Goal); goal != "" {
		b.WriteString("\nYour personal goal is: ")
		b.WriteString(goal)
	}
	b.WriteString("\n\n")
	b.WriteString(answerGuidelines)
	return b.String()
}

const answerGuidelines = `Guidelines:
- Work only from the project details and the context you are given.
- Be concrete: name tasks, owners and hour estimates rather than describing them in general terms.
- Return the complete content as your final answer, not a summary of it.`
