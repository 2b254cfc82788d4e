package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	descStyle      = lipgloss.NewStyle().Faint(true)
	footerStyle    = lipgloss.NewStyle().Faint(true)
)
