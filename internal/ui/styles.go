package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#89B4FA")
	colorMuted   = lipgloss.Color("#6C7086")
	colorText    = lipgloss.Color("#CDD6F4")
	colorError   = lipgloss.Color("#F38BA8")
	colorBlue    = lipgloss.Color("#1E66F5")
	colorBase    = lipgloss.Color("#1E1E2E")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	nowPlayingStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	elapsedStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Shuffle button while shuffle mode is on.
	activeButtonStyle = buttonStyle.
				Foreground(colorBase).
				Background(colorBlue).
				BorderForeground(colorBlue).
				Bold(true)

	playerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3)

	modalErrorTitleStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	modalInfoTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)
