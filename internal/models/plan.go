// Package models contains the data types shared by the pipeline, the
// Temporal workflow and the presentation adapters.
package models

// TaskEstimate is one planned unit of work with its cost estimate.
type TaskEstimate struct {
	TaskName           string   `json:"task_name" jsonschema:"Name of the task"`
	EstimatedTimeHours float64  `json:"estimated_time_hours" jsonschema:"Estimated time to complete the task in hours"`
	RequiredResources  []string `json:"required_resources" jsonschema:"List of resources required to complete the task"`
}

// Milestone groups tasks under a checkpoint. Tasks holds task names; they are
// expected to match TaskEstimate entries but nothing enforces it.
type Milestone struct {
	MilestoneName string   `json:"milestone_name" jsonschema:"Name of the milestone"`
	Tasks         []string `json:"tasks" jsonschema:"List of task IDs associated with this milestone"`
}

// ProjectPlan is the structured output of the terminal pipeline step.
type ProjectPlan struct {
	Tasks      []TaskEstimate `json:"tasks" jsonschema:"List of tasks with their estimates"`
	Milestones []Milestone    `json:"milestones" jsonschema:"List of project milestones"`
}

// TotalHours sums the estimates of all tasks.
func (p ProjectPlan) TotalHours() float64 {
	var total float64
	for _, t := range p.Tasks {
		total += t.EstimatedTimeHours
	}
	return total
}

// UnknownMilestoneTasks returns milestone task references that do not name a
// task in the plan, in milestone order.
func (p ProjectPlan) UnknownMilestoneTasks() []string {
	known := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		known[t.TaskName] = true
	}
	var unknown []string
	for _, m := range p.Milestones {
		for _, name := range m.Tasks {
			if !known[name] {
				unknown = append(unknown, name)
			}
		}
	}
	return unknown
}
