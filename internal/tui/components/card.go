// Package components provides reusable TUI widgets for the kpiboard dashboard.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kpiboard/internal/pipeline"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

// KPI card geometry, in terminal cells.
const (
	// CardBodyLines counts the label, value, three badge and progress lines.
	CardBodyLines = 6
	// SparkRows is the height of the card sparkline.
	SparkRows = 3
	// CardHeight is the full rendered height including the border.
	CardHeight = 2 + CardBodyLines + SparkRows
	// MinCardWidth is the narrowest card the grid lays out.
	MinCardWidth = 28
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// CardInnerWidth returns the usable text width inside a card given its outer
// width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}

// SparkOrigin returns the top-left cell of a card's sparkline relative to
// the card's own top-left corner.
func SparkOrigin() (x, y int) {
	return 2, 1 + CardBodyLines
}

// KPICard renders one metric card. spark is the pre-rendered sparkline,
// SparkRows lines of CardInnerWidth cells.
func KPICard(v pipeline.View, spark string, selected bool, outerWidth int) string {
	t := theme.Active
	inner := CardInnerWidth(outerWidth)

	bg := t.Surface
	border := t.Border
	if selected {
		border = t.BorderAccent
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(t.Background).
		Background(bg).
		Width(outerWidth-2).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg).Bold(true)
	lockStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(bg)

	lines := make([]string, 0, CardBodyLines+SparkRows)

	label := v.Label
	right := ""
	if v.Locked {
		right = "locked"
	}
	label = truncate(label, inner-lipgloss.Width(right)-1)
	lines = append(lines, spread(labelStyle.Render(label), lockStyle.Render(right), inner, bg))
	lines = append(lines, valueStyle.Render(truncate(v.Value, inner)))

	for _, b := range v.Badges {
		badgeStyle := lipgloss.NewStyle().Foreground(theme.ToneColor(b.Tone)).Background(bg)
		lines = append(lines, spread(labelStyle.Render(b.Label), badgeStyle.Render(b.Text), inner, bg))
	}

	lines = append(lines, BudgetBar(v.Progress, inner))
	lines = append(lines, spark)

	return cardStyle.Render(strings.Join(lines, "\n"))
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n\n"
	}
	content += body

	return cardStyle.Render(content)
}

// CardRow joins pre-rendered card strings horizontally.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// spread places left and right at the two ends of a width-cell line.
func spread(left, right string, width int, bg lipgloss.Color) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	fill := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", gap))
	return left + fill + right
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
