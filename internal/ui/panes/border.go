// Package panes contains the bordered pane component the browser layouts
// are built from.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/espalier/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures the appearance of a bordered panel.
type BorderConfig struct {
	Content string // The content to render inside the border
	Width   int    // Total width including borders
	Height  int    // Total height including borders

	// Title placement, all optional. Titles are embedded in the border:
	// ╭─ TopLeft ────────── TopRight ─╮
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string

	// Styling
	Focused            bool                   // Whether the panel has focus
	TitleColor         lipgloss.TerminalColor // Color for title text
	BorderColor        lipgloss.TerminalColor // Border color when not focused
	FocusedBorderColor lipgloss.TerminalColor // Border color when focused
}

// BorderedPane renders content within a bordered panel with optional titles
// embedded in the top and bottom border lines.
//
// Nil color fallback rules:
//   - Both BorderColor and FocusedBorderColor nil: BorderDefaultColor for both states
//   - BorderColor set, FocusedBorderColor nil: BorderColor for both states
//   - BorderColor nil, FocusedBorderColor set: unfocused uses BorderDefaultColor
func BorderedPane(cfg BorderConfig) string {
	borderColor := resolveBorderColor(cfg.BorderColor, cfg.FocusedBorderColor, cfg.Focused)

	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.BorderDefaultColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	contentHeight := max(cfg.Height-2, 1)

	topBorder := buildEdge(borderTopLeft, borderTopRight, cfg.TopLeft, cfg.TopRight,
		innerWidth, borderStyle, titleStyle)
	bottomBorder := buildEdge(borderBottomLeft, borderBottomRight, cfg.BottomLeft, cfg.BottomRight,
		innerWidth, borderStyle, titleStyle)

	// lipgloss handles wrapping and truncation of the body
	contentStyle := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight)
	contentLines := strings.Split(contentStyle.Render(cfg.Content), "\n")

	paddedLines := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}

		// Pad to innerWidth so the right border aligns
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		paddedLines[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var result strings.Builder
	result.WriteString(topBorder)
	result.WriteString("\n")
	result.WriteString(strings.Join(paddedLines, "\n"))
	result.WriteString("\n")
	result.WriteString(bottomBorder)

	return result.String()
}

func resolveBorderColor(borderColor, focusedBorderColor lipgloss.TerminalColor, focused bool) lipgloss.TerminalColor {
	if focused && focusedBorderColor != nil {
		return focusedBorderColor
	}
	if borderColor != nil {
		return borderColor
	}
	return styles.BorderDefaultColor
}

// buildEdge creates one horizontal border line with optional embedded titles:
// ╭─ Left ───────── Right ─╮ (or the ╰...╯ equivalent).
func buildEdge(cornerLeft, cornerRight, left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(cornerLeft + cornerRight)
	}

	plain := func() string {
		return borderStyle.Render(cornerLeft + strings.Repeat(borderHorizontal, innerWidth) + cornerRight)
	}
	if left == "" && right == "" {
		return plain()
	}

	// Drop the right title first when the pane is too narrow for both, then
	// truncate whatever is left.
	if right != "" && innerWidth < lipgloss.Width(left)+lipgloss.Width(right)+7 {
		right = ""
	}
	if right == "" && left == "" {
		return plain()
	}
	if right == "" {
		// "─ " + left + " " must fit with at least one trailing dash
		if avail := innerWidth - 4; lipgloss.Width(left) > avail {
			left = styles.TruncateString(left, avail)
		}
		if left == "" {
			return plain()
		}
	}
	if left == "" {
		if avail := innerWidth - 4; lipgloss.Width(right) > avail {
			right = styles.TruncateString(right, avail)
		}
		if right == "" {
			return plain()
		}
	}

	// innerWidth = ["─ " left " "] + middle dashes + [" " right " ─"]
	middle := innerWidth
	if left != "" {
		middle -= lipgloss.Width(left) + 3
	}
	if right != "" {
		middle -= lipgloss.Width(right) + 3
	}
	middle = max(middle, 1)

	var result strings.Builder
	result.WriteString(borderStyle.Render(cornerLeft))
	if left != "" {
		result.WriteString(borderStyle.Render(borderHorizontal + " "))
		result.WriteString(titleStyle.Render(left))
		result.WriteString(borderStyle.Render(" "))
	}
	result.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, middle)))
	if right != "" {
		result.WriteString(borderStyle.Render(" "))
		result.WriteString(titleStyle.Render(right))
		result.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	result.WriteString(borderStyle.Render(cornerRight))

	return result.String()
}
