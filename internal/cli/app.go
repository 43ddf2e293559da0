// Package cli is the terminal front end: a bubbletea form with a single
// "Generate Project Plan" button that runs the planner and shows the tables.
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/planner"
)

// Config holds CLI configuration.
type Config struct {
	Planner planner.Planner
	Input   models.PipelineInput
	Width   int
	NoColor bool
	// ShowSteps renders the intermediate step outputs under the tables.
	ShowSteps bool
}

// App owns the bubbletea program.
type App struct {
	config  Config
	program *tea.Program
}

// NewApp creates a new CLI app.
func NewApp(config Config) *App {
	return &App{config: config}
}

// ReportStatus forwards a run status to the UI. It is safe to call from the
// planner goroutine and does nothing before Run.
func (a *App) ReportStatus(status models.RunStatus) {
	if a.program != nil {
		a.program.Send(statusMsg(status))
	}
}

// Run shows the form until the user quits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.program = tea.NewProgram(NewModel(ctx, a.config), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := a.program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

type statusMsg models.RunStatus

type resultMsg struct {
	result *crew.Result
	err    error
}

var (
	appTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle    = lipgloss.NewStyle().Bold(true)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	focusedButton = buttonStyle.BorderForeground(lipgloss.Color("10")).Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const buttonLabel = "Generate Project Plan"

// SetPlanner replaces the planner used by the Generate button. Call before Run.
func (a *App) SetPlanner(pl planner.Planner) {
	a.config.Planner = pl
}
