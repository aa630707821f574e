package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Pane              *lipgloss.Style
	Title             *lipgloss.Style
	Item              *lipgloss.Style
	SelectedItem      *lipgloss.Style
	SelectedIndicator string
	Empty             *lipgloss.Style
	Error             *lipgloss.Style
	Value             *lipgloss.Style
	Info              *lipgloss.Style
	Footer            *lipgloss.Style
}

var defaultStyles = Styles{
	Pane: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	),
	SelectedIndicator: ">",
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	),
	Value: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
