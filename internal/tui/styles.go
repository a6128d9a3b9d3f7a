package tui

import "github.com/charmbracelet/lipgloss"

var (
	kickerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	contractIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("111"))

	pillStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("230"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	branchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	payloadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("111")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
