// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
// Truncation walks grapheme clusters, so combining marks and emoji never split.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	// Need to truncate - leave room for ellipsis
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var result strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if width+w > maxWidth-3 {
			break
		}
		result.WriteString(g.Str())
		width += w
	}

	return result.String() + "..."
}

// FormatDiagnosticCount returns the status bar indicator for merge
// diagnostics. Returns empty string when count is 0.
func FormatDiagnosticCount(count int) string {
	if count <= 0 {
		return ""
	}
	return fmt.Sprintf("%d⚠", count)
}
