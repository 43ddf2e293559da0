// Package present turns a ProjectPlan into tables and renders them for the
// terminal, markdown and the web page.
package present

import (
	"strconv"
	"strings"

	"github.com/mfateev/project-planner/internal/models"
)

const (
	TitleTasks      = "Task Breakdown"
	TitleMilestones = "Project Milestones"
)

// Table is a titled grid of cells. Columns are the record field names.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Tables returns the task table followed by the milestone table. A table
// whose collection is empty is left out, so the result has zero, one or two
// entries. Rows keep the plan's order.
func Tables(plan *models.ProjectPlan) []Table {
	if plan == nil {
		return nil
	}

	var tables []Table
	if len(plan.Tasks) > 0 {
		t := Table{
			Title:   TitleTasks,
			Columns: []string{"task_name", "estimated_time_hours", "required_resources"},
		}
		for _, task := range plan.Tasks {
			t.Rows = append(t.Rows, []string{
				task.TaskName,
				FormatHours(task.EstimatedTimeHours),
				strings.Join(task.RequiredResources, ", "),
			})
		}
		tables = append(tables, t)
	}
	if len(plan.Milestones) > 0 {
		t := Table{
			Title:   TitleMilestones,
			Columns: []string{"milestone_name", "tasks"},
		}
		for _, m := range plan.Milestones {
			t.Rows = append(t.Rows, []string{m.MilestoneName, strings.Join(m.Tasks, ", ")})
		}
		tables = append(tables, t)
	}
	return tables
}

// FormatHours prints an estimate without trailing zeros: 10, 2.5.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
