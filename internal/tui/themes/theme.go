// Package themes defines the visual styles for the TUI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Selected      lipgloss.Style
	Profit        lipgloss.Style
	Loss          lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	Box           lipgloss.Style
	Border        lipgloss.Color
	Primary       lipgloss.Color
}

// Dark is the default theme.
var Dark = Theme{
	Primary: lipgloss.Color("#3b82f6"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#3b82f6")).
		Padding(0, 1),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#3b82f6")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Profit: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Loss: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}

// Light mirrors Dark for bright terminals.
var Light = Theme{
	Primary: lipgloss.Color("#2563eb"),
	Border:  lipgloss.Color("#d4d4d4"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#171717")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#525252")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#171717")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#171717")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#2563eb")).
		Padding(0, 1),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#525252")).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#2563eb")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Profit: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#059669")),
	Loss: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#dc2626")),
	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#059669")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#dc2626")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#d4d4d4")).
		Padding(0, 1),
}
