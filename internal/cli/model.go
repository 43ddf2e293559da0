package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfateev/project-planner/internal/crew"
	"github.com/mfateev/project-planner/internal/models"
	"github.com/mfateev/project-planner/internal/present"
)

// Model is the bubbletea model. Focus walks the five fields and then the
// button; a run blocks editing until it finishes.
type Model struct {
	ctx    context.Context
	config Config

	fields  []field
	focus   int
	spinner spinner.Model
	width   int

	status models.RunStatus
	result *crew.Result
	err    error
	steps  string
}

// NewModel builds the form pre-filled with config.Input.
func NewModel(ctx context.Context, config Config) Model {
	m := Model{
		ctx:     ctx,
		config:  config,
		fields:  newFields(config.Input),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   config.Width,
		status:  models.RunStatus{State: models.RunStateIdle},
	}
	m.fields[0].focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) buttonFocused() bool {
	return m.focus == fieldCount
}

func (m Model) running() bool {
	return m.status.State == models.RunStateRunning
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for _, f := range m.fields {
			f.setWidth(msg.Width - 2)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusMsg:
		// Late updates from the poller must not reopen a finished run.
		if m.running() {
			m.status = models.RunStatus(msg)
			m.status.State = models.RunStateRunning
		}
		return m, nil

	case resultMsg:
		return m.finish(msg), nil

	case spinner.TickMsg:
		if !m.running() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.running() && !m.buttonFocused() {
		return m, m.fields[m.focus].update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if !m.running() {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.running() {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m, m.moveFocus(1)
	case "shift+tab":
		return m, m.moveFocus(-1)
	case "enter":
		if m.buttonFocused() {
			return m.generate()
		}
		if m.fields[m.focus].input != nil {
			return m, m.moveFocus(1)
		}
	}

	if m.buttonFocused() {
		return m, nil
	}
	return m, m.fields[m.focus].update(msg)
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if !m.buttonFocused() {
		m.fields[m.focus].blur()
	}
	m.focus = (m.focus + delta + fieldCount + 1) % (fieldCount + 1)
	if m.buttonFocused() {
		return nil
	}
	return m.fields[m.focus].focus()
}

// generate starts a run with the current field values.
func (m Model) generate() (tea.Model, tea.Cmd) {
	m.status = models.RunStatus{State: models.RunStateRunning}
	m.result = nil
	m.err = nil
	m.steps = ""

	pl := m.config.Planner
	ctx := m.ctx
	input := inputFromFields(m.fields)
	run := func() tea.Msg {
		result, err := pl.Plan(ctx, input)
		return resultMsg{result: result, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) finish(msg resultMsg) Model {
	m.result = msg.result
	m.err = msg.err
	if msg.err != nil {
		m.status.State = models.RunStateFailed
		m.status.Error = msg.err.Error()
		return m
	}
	m.status.State = models.RunStateSucceeded
	m.status.CurrentStep = ""
	if m.config.ShowSteps && len(msg.result.Outputs) > 0 {
		rendered, err := present.RenderMarkdown(present.StepsMarkdown(msg.result.Outputs), m.width, m.config.NoColor)
		if err == nil {
			m.steps = rendered
		}
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(appTitleStyle.Render("Project Planner"))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		label := f.label
		if i == m.focus {
			label = "> " + label
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(f.view())
		b.WriteString("\n\n")
	}

	if m.buttonFocused() {
		b.WriteString(focusedButton.Render(buttonLabel))
	} else {
		b.WriteString(buttonStyle.Render(buttonLabel))
	}
	b.WriteString("\n")

	switch m.status.State {
	case models.RunStateRunning:
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		if m.status.CurrentStep != "" {
			fmt.Fprintf(&b, " Running %s (%d/%d done)", m.status.CurrentStep, len(m.status.CompletedSteps), len(crew.Lineup))
		} else {
			b.WriteString(" Starting...")
		}
		b.WriteString("\n")

	case models.RunStateSucceeded:
		b.WriteString(present.TerminalString(present.Tables(m.result.Plan), m.width))
		fmt.Fprintf(&b, "\nTotal estimated hours: %s\n", present.FormatHours(m.result.Plan.TotalHours()))
		if unknown := m.result.Plan.UnknownMilestoneTasks(); len(unknown) > 0 {
			b.WriteString(dimStyle.Render("Milestones reference unknown tasks: " + strings.Join(unknown, ", ")))
			b.WriteString("\n")
		}
		if m.steps != "" {
			b.WriteString(m.steps)
		}

	case models.RunStateFailed:
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		var sve *models.SchemaValidationError
		if errors.As(m.err, &sve) && sve.Raw != "" {
			b.WriteString(dimStyle.Render("Raw model output:"))
			b.WriteString("\n")
			b.WriteString(sve.Raw)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("tab/shift+tab move • enter generate • esc quit"))
	b.WriteString("\n")
	return b.String()
}
