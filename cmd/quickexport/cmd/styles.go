package cmd

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")) // Green

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")) // Amber

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")) // Red

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")) // Gray

	nodeStyle = lipgloss.NewStyle().
			Bold(true)
)
