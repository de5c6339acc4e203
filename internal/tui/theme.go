package tui

import "github.com/charmbracelet/lipgloss"

var (
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Surface1 = lipgloss.Color("#45475a")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Foreground(Text).
			Padding(1, 2)

	puzzleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Lavender).
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(Subtext0)
	badgeStyle = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	goodStyle  = lipgloss.NewStyle().Foreground(Green)
	badStyle   = lipgloss.NewStyle().Foreground(Red)
)
