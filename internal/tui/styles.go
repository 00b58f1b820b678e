package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#E5A00D")
	dim    = lipgloss.Color("#6B7280")
	light  = lipgloss.Color("#9CA3AF")
	white  = lipgloss.Color("#F9FAFB")
	red    = lipgloss.Color("#EF4444")
)

var (
	slideStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)

	loadingSlideStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(dim).
				Padding(1, 2)

	titleStyle    = lipgloss.NewStyle().Foreground(white).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(light)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	accentStyle   = lipgloss.NewStyle().Foreground(accent)
	errorStyle    = lipgloss.NewStyle().Foreground(red)
)
