package render

import "github.com/charmbracelet/lipgloss"

var (
	IDStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#626262"))

	ActionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	StateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	TerminalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	SharedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))
)
