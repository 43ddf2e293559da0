package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TerminalString draws each table under its title. A width of zero leaves
// the tables at their natural width.
func TerminalString(tables []Table, width int) string {
	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")

		lt := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers(t.Columns...).
			Rows(t.Rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		if width > 0 {
			lt = lt.Width(width)
		}
		b.WriteString(lt.String())
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTerminal writes TerminalString to w.
func RenderTerminal(w io.Writer, tables []Table, width int) error {
	_, err := fmt.Fprint(w, TerminalString(tables, width))
	return err
}
