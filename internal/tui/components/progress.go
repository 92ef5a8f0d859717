package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

// BudgetBar renders budget progress (0-100) as a bar followed by the
// percentage, width cells in total.
func BudgetBar(pct float64, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 100)

	pctStr := fmt.Sprintf(" %3.0f%%", pct)
	barW := max(width-len(pctStr), 4)

	color := t.Accent
	if pct >= 100 {
		color = t.AccentBright
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	return bar.ViewAs(pct/100) + pctStyle.Render(pctStr)
}
