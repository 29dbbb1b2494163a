// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Group and action names
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Command previews, counts
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, tree connectors
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Description/body text
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Filter input placeholder

	// Semantic color names - Border
	BorderDefaultColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"} // Focused input borders
	BorderHighlightColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane borders

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Clean assembles
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Merge diagnostics
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Load failures

	// Selection indicator color (the ">" cursor prefix in the menu)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}

	// Selection indicator style (the ">" cursor prefix in the menu)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Group names in the menu pane
	GroupStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	// Action names in the menu pane
	ActionStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)

	// Command previews next to actions
	ExecStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	// Tree connectors and scroll indicators
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Merge diagnostic counts in the status bar
	DiagnosticStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
