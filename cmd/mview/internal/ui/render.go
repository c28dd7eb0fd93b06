package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/recera/mview/pkg/mvgen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	workStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errPosStyle = lipgloss.NewStyle().Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Italic(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("mview watch"))
	if m.clients > 0 || m.reloads > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d clients, %d reloads", m.clients, m.reloads)))
	}
	sb.WriteString("\n\n")

	for _, path := range m.order {
		st := m.files[path]
		switch st.status {
		case StatusCompiling:
			fmt.Fprintf(&sb, " %s %s\n", workStyle.Render(m.spinner.View()), path)
		case StatusOK:
			fmt.Fprintf(&sb, " %s %s %s\n", okStyle.Render("✓"), path,
				dimStyle.Render(st.duration.Round(time.Millisecond).String()))
		case StatusFailed:
			fmt.Fprintf(&sb, " %s %s\n", failStyle.Render("✗"), path)
			sb.WriteString(indentLines(RenderError(path, st.err), "   "))
		default:
			fmt.Fprintf(&sb, " %s %s\n", dimStyle.Render("·"), path)
		}
	}

	sb.WriteString(helpStyle.Render("q to quit"))
	sb.WriteString("\n")
	return sb.String()
}

// RenderError renders a compilation failure for terminal output. Template
// diagnostics get one styled file:line:col line each; other errors render as
// a single line.
func RenderError(path string, err error) string {
	var list *mvgen.ErrorList
	switch e := err.(type) {
	case *mvgen.ErrorList:
		list = e
	default:
		return failStyle.Render(fmt.Sprintf("%s: %v", path, err)) + "\n"
	}

	var sb strings.Builder
	for _, diag := range list.Errors() {
		pos := diag.Pos()
		sb.WriteString(errPosStyle.Render(pos.String()))
		sb.WriteString(": ")
		sb.WriteString(failStyle.Render("error: " + diag.Message))
		if diag.Hint != "" {
			sb.WriteString(" ")
			sb.WriteString(hintStyle.Render("(hint: " + diag.Hint + ")"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func indentLines(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
