package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"

	"github.com/mfateev/project-planner/internal/models"
)

// Markdown writes the tables as GitHub-flavored markdown, one "## Title"
// section per table. Pipes inside cells are escaped.
func Markdown(tables []Table) string {
	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", t.Title)
		writeRow(&b, t.Columns)
		seps := make([]string, len(t.Columns))
		for j := range seps {
			seps[j] = "---"
		}
		writeRow(&b, seps)
		for _, row := range t.Rows {
			writeRow(&b, row)
		}
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		c = strings.ReplaceAll(c, "|", `\|`)
		c = strings.ReplaceAll(c, "\n", " ")
		b.WriteString(" ")
		b.WriteString(c)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// StepsMarkdown lays out intermediate step outputs as markdown sections.
func StepsMarkdown(outputs []models.StepOutput) string {
	var b strings.Builder
	for i, out := range outputs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", out.Step)
		if out.Role != "" {
			fmt.Fprintf(&b, "_%s_\n\n", out.Role)
		}
		b.WriteString(strings.TrimSpace(out.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMarkdown renders md for the terminal with glamour. noColor selects
// the plain style used when stdout is not a terminal.
func RenderMarkdown(md string, width int, noColor bool) (string, error) {
	style := glamourstyles.DarkStyleConfig
	if noColor {
		style = glamourstyles.NoTTYStyleConfig
	}
	style.H2.Prefix = ""
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("glamour init: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("glamour render: %w", err)
	}
	return out, nil
}
