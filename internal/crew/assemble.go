// Package crew assembles the three planning roles and steps from
// configuration and runs them in their fixed order.
package crew

import (
	"fmt"

	"github.com/mfateev/project-planner/internal/config"
	"github.com/mfateev/project-planner/internal/models"
)

// Step and role names the configuration documents must define.
const (
	RoleProjectPlanning    = "project_planning_agent"
	RoleEstimation         = "estimation_agent"
	RoleResourceAllocation = "resource_allocation_agent"

	StepTaskBreakdown          = "task_breakdown"
	StepTimeResourceEstimation = "time_resource_estimation"
	StepResourceAllocation     = "resource_allocation"
)

// Binding ties one step to the role that performs it.
type Binding struct {
	Step       string
	Role       string
	Structured bool
}

// Lineup is the fixed execution order: breakdown -> estimation -> allocation.
// Only the last step produces a ProjectPlan.
var Lineup = []Binding{
	{Step: StepTaskBreakdown, Role: RoleProjectPlanning},
	{Step: StepTimeResourceEstimation, Role: RoleEstimation},
	{Step: StepResourceAllocation, Role: RoleResourceAllocation, Structured: true},
}

// Crew is an assembled pipeline. It is immutable once built.
type Crew struct {
	Roles []models.RoleSpec
	Steps []models.StepSpec
	// Verbose holds the step names whose agent asked for verbose output.
	Verbose map[string]bool
}

// Assemble builds the roles and steps of Lineup from the loaded documents.
// A missing name, or a task whose agent field names a different role, is a
// *models.ConfigError.
func Assemble(cfg *config.CrewConfig) (*Crew, error) {
	c := &Crew{Verbose: make(map[string]bool)}
	for _, b := range Lineup {
		agent, ok := cfg.Agents[b.Role]
		if !ok {
			return nil, &models.ConfigError{Path: "agents", Key: b.Role, Err: fmt.Errorf("agent not defined")}
		}
		task, ok := cfg.Tasks[b.Step]
		if !ok {
			return nil, &models.ConfigError{Path: "tasks", Key: b.Step, Err: fmt.Errorf("task not defined")}
		}
		if task.Agent != "" && task.Agent != b.Role {
			return nil, &models.ConfigError{Path: "tasks", Key: b.Step,
				Err: fmt.Errorf("bound to agent %q, expected %q", task.Agent, b.Role)}
		}

		role := models.RoleSpec{
			Name:      b.Role,
			Role:      agent.Role,
			Goal:      agent.Goal,
			Backstory: agent.Backstory,
		}
		c.Roles = append(c.Roles, role)
		c.Steps = append(c.Steps, models.StepSpec{
			Name:           b.Step,
			Description:    task.Description,
			ExpectedOutput: task.ExpectedOutput,
			Role:           role,
			Structured:     b.Structured,
		})
		if agent.Verbose {
			c.Verbose[b.Step] = true
		}
	}
	return c, nil
}

// Load reads both documents and assembles the crew.
func Load(agentsPath, tasksPath string) (*Crew, error) {
	cfg, err := config.LoadCrewConfig(agentsPath, tasksPath)
	if err != nil {
		return nil, err
	}
	return Assemble(cfg)
}
