package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorAccent    = lipgloss.Color("#E0B85F") // amber, the board's highlight colour
	colorWhite     = lipgloss.Color("#FFFFFF") // White for selected items
	colorDim       = lipgloss.Color("#6B7280") // Gray for dimmed text
	colorSuccess   = lipgloss.Color("#10B981") // Green for done subtasks
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow/amber for notices
	colorError     = lipgloss.Color("#EF4444") // Red for errors
	colorSeparator = lipgloss.Color("#4B5563") // Darker gray for separators
)

// defaultWidth is used until the first WindowSizeMsg arrives
const defaultWidth = 80

// Styles
var (
	// Header title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Selected item style - white bold (no background)
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	// Unselected item style
	ItemStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	// Dimmed item style (for paths, details)
	DimmedStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	// Success style
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Warning style
	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Box style for control windows
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	// Column style for board columns
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorSeparator).
			Padding(0, 1).
			Width(24)

	// Input style for text input
	InputStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	// Separator style
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(colorSeparator)

	// Key highlight style (for keybinding display)
	KeyStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	// Column header style
	ColumnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Bold(true)

	// Control bar buttons
	ButtonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	ActiveButtonStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true).
				Underline(true)

	// Marks the active board and members included in it
	MarkStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)

// Cursor returns the selection cursor (› instead of >)
func Cursor() string {
	return lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true).
		Render("› ")
}

// NoCursor returns spacing for non-selected items
func NoCursor() string {
	return "  "
}

// RenderSeparator returns a horizontal separator line
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 60
	}
	return SeparatorStyle.Render(strings.Repeat("─", width))
}

// RenderKeyBinding formats a key binding with highlighted key
func RenderKeyBinding(key, description string) string {
	return KeyStyle.Render(key) + " " + DimmedStyle.Render(description)
}

// RenderKeyBindings joins several key bindings on one line
func RenderKeyBindings(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, RenderKeyBinding(pairs[i], pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
