// Package tui is the interactive front end: it drives an ingestion run
// frame by frame and pages through the finished messages.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
)

var (
	// TitleStyle for the header.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// PathStyle for the folder being packaged.
	PathStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// StatusStyle for the pipeline status line.
	StatusStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for a failed run.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// CounterStyle for the "Message i/N" indicator.
	CounterStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle frames the current message.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	// HelpStyle for the key hints.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
