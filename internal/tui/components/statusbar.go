package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

// RenderStatusBar renders the one-line bottom status bar with key hints on
// the left and info on the right. Info is dropped before hints are cut.
func RenderStatusBar(width int, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := " [enter]drill down  [r]egenerate  [t]heme  [?]help  [q]uit"
	right := ""
	if info != "" {
		right = info + " "
	}

	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		right = ""
	}
	left = ansi.Truncate(left, width, "")

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
