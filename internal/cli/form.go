package cli

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfateev/project-planner/internal/models"
)

// field is one form control: a single-line input or a multi-line area.
type field struct {
	label string
	input *textinput.Model
	area  *textarea.Model
}

func newInputField(label, value string) field {
	ti := textinput.New()
	ti.SetValue(value)
	ti.Prompt = ""
	return field{label: label, input: &ti}
}

func newAreaField(label, value string) field {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetValue(value)
	return field{label: label, area: &ta}
}

func (f field) focus() tea.Cmd {
	if f.input != nil {
		return f.input.Focus()
	}
	return f.area.Focus()
}

func (f field) blur() {
	if f.input != nil {
		f.input.Blur()
		return
	}
	f.area.Blur()
}

func (f field) value() string {
	if f.input != nil {
		return f.input.Value()
	}
	return f.area.Value()
}

func (f field) view() string {
	if f.input != nil {
		return f.input.View()
	}
	return f.area.View()
}

func (f field) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.input != nil {
		*f.input, cmd = f.input.Update(msg)
		return cmd
	}
	*f.area, cmd = f.area.Update(msg)
	return cmd
}

func (f field) setWidth(w int) {
	if f.area != nil {
		f.area.SetWidth(w)
	}
}

// Field order on screen.
const (
	fieldProject = iota
	fieldIndustry
	fieldObjectives
	fieldTeamMembers
	fieldRequirements
	fieldCount
)

func newFields(in models.PipelineInput) []field {
	fields := make([]field, fieldCount)
	fields[fieldProject] = newInputField("Project", in.Project)
	fields[fieldIndustry] = newInputField("Industry", in.Industry)
	fields[fieldObjectives] = newAreaField("Project Objectives", in.Objectives)
	fields[fieldTeamMembers] = newAreaField("Team Members", in.TeamMembers)
	fields[fieldRequirements] = newAreaField("Project Requirements", in.Requirements)
	return fields
}

func inputFromFields(fields []field) models.PipelineInput {
	return models.PipelineInput{
		Project:      fields[fieldProject].value(),
		Industry:     fields[fieldIndustry].value(),
		Objectives:   fields[fieldObjectives].value(),
		TeamMembers:  fields[fieldTeamMembers].value(),
		Requirements: fields[fieldRequirements].value(),
	}
}
