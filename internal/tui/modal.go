package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kpiboard/internal/cli"
	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/pickup"
	"github.com/theirongolddev/kpiboard/internal/tui/components"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

const (
	modalWidth     = 72
	modalSparkRows = 5
)

// viewModal renders the seven-day drill-down of one card.
func (a App) viewModal(c cardState) string {
	t := theme.Active
	w := min(modalWidth, a.width-2)
	inner := components.CardInnerWidth(w)

	head := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	cell := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mark := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	d := c.card.Domain
	row := func(cols ...string) string {
		return fmt.Sprintf("%-12s%12s%12s%12s%12s", cols[0], cols[1], cols[2], cols[3], cols[4])
	}

	var b strings.Builder
	b.WriteString(head.Render(row("Day", "Current", "Prior", "Budget", "Forecast")))
	b.WriteString("\n")
	for _, p := range c.series {
		line := row(cli.FormatDay(p),
			metric.Format(d, p.Current), metric.Format(d, p.Prior),
			metric.Format(d, p.Budget), metric.Format(d, p.Forecast))
		if p.IsYesterday {
			b.WriteString(mark.Render(line))
		} else {
			b.WriteString(cell.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(components.Sparkline(c.layout, pickup.YesterdayIndex, inner, modalSparkRows))
	b.WriteString("\n\n")

	delta := c.series.Pickup()
	pickupStyle := lipgloss.NewStyle().Foreground(theme.ToneColor(c.layout.Tone)).Background(t.Surface).Bold(true)
	b.WriteString(cell.Render("Yesterday pickup  "))
	b.WriteString(pickupStyle.Render(cli.FormatPickup(d, delta)))
	b.WriteString("\n\n")
	b.WriteString(dim.Render("[←→] other metric  [esc] close"))

	title := c.view.Label + " · 7-day pickup"
	if c.view.Locked {
		title += " · locked"
	}
	card := components.ContentCard(title, b.String(), w)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"← → ↑ ↓", "Select card"},
		{"g G", "First / last card"},
		{"Enter", "Open 7-day drill-down"},
		{"mouse", "Hover a sparkline for daily detail"},
		{"click", "Select, click again to drill down"},
		{"Esc", "Close / clear hover"},
		{"r", "Regenerate pickup series"},
		{"t", "Cycle theme"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := components.ContentCard("◈ Keyboard Shortcuts", b.String(), 56)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
