package panes

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/espalier/internal/ui/styles"
)

// render strips ANSI so tests can assert on border structure.
func render(t *testing.T, cfg BorderConfig) []string {
	t.Helper()
	return strings.Split(ansi.Strip(BorderedPane(cfg)), "\n")
}

func TestBorderedPane_Dimensions(t *testing.T) {
	lines := render(t, BorderConfig{Content: "hello", Width: 20, Height: 5})

	require.Len(t, lines, 5, "height includes both border lines")
	for i, line := range lines {
		require.Equal(t, 20, lipgloss.Width(line), "line %d width", i)
	}
}

func TestBorderedPane_Corners(t *testing.T) {
	lines := render(t, BorderConfig{Content: "x", Width: 10, Height: 3})

	require.True(t, strings.HasPrefix(lines[0], "╭"))
	require.True(t, strings.HasSuffix(lines[0], "╮"))
	require.True(t, strings.HasPrefix(lines[2], "╰"))
	require.True(t, strings.HasSuffix(lines[2], "╯"))
}

func TestBorderedPane_ContentInside(t *testing.T) {
	lines := render(t, BorderConfig{Content: "menu body", Width: 20, Height: 3})

	require.Contains(t, lines[1], "menu body")
	require.True(t, strings.HasPrefix(lines[1], "│"))
	require.True(t, strings.HasSuffix(lines[1], "│"))
}

func TestBorderedPane_TopLeftTitle(t *testing.T) {
	lines := render(t, BorderConfig{Content: "x", Width: 30, Height: 3, TopLeft: "Menu"})

	require.Contains(t, lines[0], "╭─ Menu ")
}

func TestBorderedPane_DualTitles(t *testing.T) {
	lines := render(t, BorderConfig{
		Content: "x", Width: 40, Height: 3,
		TopLeft: "Menu", TopRight: "12 actions",
	})

	require.Contains(t, lines[0], "─ Menu ")
	require.Contains(t, lines[0], " 12 actions ─╮")
	require.Equal(t, 40, lipgloss.Width(lines[0]))
}

func TestBorderedPane_BottomTitles(t *testing.T) {
	lines := render(t, BorderConfig{
		Content: "x", Width: 40, Height: 3,
		BottomLeft: "? help", BottomRight: "2⚠",
	})

	last := lines[len(lines)-1]
	require.Contains(t, last, "╰─ ? help ")
	require.Contains(t, last, " 2⚠ ─╯")
}

func TestBorderedPane_TitleTruncation(t *testing.T) {
	lines := render(t, BorderConfig{
		Content: "x", Width: 12, Height: 3,
		TopLeft: "A very long pane title",
	})

	require.Equal(t, 12, lipgloss.Width(lines[0]))
	require.Contains(t, lines[0], "...")
}

func TestBorderedPane_DropsRightTitleWhenNarrow(t *testing.T) {
	lines := render(t, BorderConfig{
		Content: "x", Width: 14, Height: 3,
		TopLeft: "Menu", TopRight: "12 actions",
	})

	require.Equal(t, 14, lipgloss.Width(lines[0]))
	require.Contains(t, lines[0], "Menu")
	require.NotContains(t, lines[0], "actions")
}

func TestBorderedPane_LongContentConstrained(t *testing.T) {
	long := strings.Repeat("word ", 30)
	lines := render(t, BorderConfig{Content: long, Width: 24, Height: 6})

	for i, line := range lines {
		require.Equal(t, 24, lipgloss.Width(line), "line %d width", i)
	}
}

func TestBorderedPane_MinimumSize(t *testing.T) {
	// Degenerate sizes must not panic or produce negative repeats.
	out := BorderedPane(BorderConfig{Content: "x", Width: 0, Height: 0})
	require.NotEmpty(t, out)
}

func TestResolveBorderColor(t *testing.T) {
	focus := styles.BorderHighlightColor
	base := styles.TextMutedColor

	tests := []struct {
		name     string
		border   lipgloss.TerminalColor
		focused  lipgloss.TerminalColor
		hasFocus bool
		want     lipgloss.TerminalColor
	}{
		{"both nil unfocused", nil, nil, false, styles.BorderDefaultColor},
		{"both nil focused", nil, nil, true, styles.BorderDefaultColor},
		{"border only focused", base, nil, true, base},
		{"focus color unfocused", nil, focus, false, styles.BorderDefaultColor},
		{"focus color focused", nil, focus, true, focus},
		{"both set unfocused", base, focus, false, base},
		{"both set focused", base, focus, true, focus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolveBorderColor(tt.border, tt.focused, tt.hasFocus))
		})
	}
}
