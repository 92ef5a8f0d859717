package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/theirongolddev/kpiboard/internal/sparkline"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

// Tooltip renders the hover box for one point of a sparkline.
func Tooltip(tip sparkline.Tooltip) string {
	t := theme.Active

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(0, 1)
	head := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	title := tip.DayName + " " + tip.Date
	if tip.IsYesterday {
		title += " · yesterday"
	}

	lines := []string{
		head.Render(title),
		label.Render(fmt.Sprintf("%-9s", "Current")) + value.Render(tip.Formatted),
	}
	for _, c := range tip.Comparisons {
		delta := lipgloss.NewStyle().Foreground(theme.ToneColor(c.Tone)).Background(t.Surface)
		lines = append(lines, label.Render(fmt.Sprintf("%-9s", c.Label))+
			value.Render(fmt.Sprintf("%-10s", c.Formatted))+
			delta.Render(c.DeltaText))
	}

	return box.Render(strings.Join(lines, "\n"))
}

// Overlay draws box over base with its top-left cell at (x, y). Lines of box
// falling outside base are dropped.
func Overlay(base, box string, x, y int) string {
	lines := strings.Split(base, "\n")
	x = max(x, 0)

	for i, bl := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		line := lines[row]

		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(bl), "")
		lines[row] = left + bl + right
	}
	return strings.Join(lines, "\n")
}
