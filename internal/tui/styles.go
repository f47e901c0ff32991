package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	primaryColor   = lipgloss.Color("#7D56F4") // purple
	activeColor    = lipgloss.Color("#43BF6D") // green
	errorColor     = lipgloss.Color("#FF5555")
	subtleColor    = lipgloss.Color("#626262")
	highlightColor = lipgloss.Color("#FFFFFF")
)

// Common styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(1, 0)

	addrStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Italic(true)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Margin(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor)

	activeCellStyle = cellStyle.
			BorderForeground(activeColor).
			Foreground(activeColor).
			Bold(true)

	cursorCellStyle = cellStyle.
			BorderForeground(primaryColor).
			Foreground(highlightColor).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Padding(1, 0)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			Padding(1, 0)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)
)
