package tui

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pathStyle    = lipgloss.NewStyle().Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// SuccessLine renders a per-file confirmation for the terminal.
func SuccessLine(kind, output string) string {
	return successStyle.Render("updated "+kind+":") + " " + pathStyle.Render(output)
}

// ErrorLine renders a failure for stderr.
func ErrorLine(err error) string {
	return errorStyle.Render("error: ") + err.Error()
}

// NoteLine renders a secondary informational line.
func NoteLine(text string) string {
	return faintStyle.Render(text)
}
