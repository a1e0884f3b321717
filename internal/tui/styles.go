package tui

import "charm.land/lipgloss/v2"

var (
	colorAccent = lipgloss.Color("141")
	colorText   = lipgloss.Color("252")
	colorMuted  = lipgloss.Color("245")
	colorUser   = lipgloss.Color("42")

	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorUser).
			Bold(true)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorText)

	typingStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent)
)
