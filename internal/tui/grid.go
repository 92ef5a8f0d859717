package tui

import (
	"github.com/theirongolddev/kpiboard/internal/sparkline"
	"github.com/theirongolddev/kpiboard/internal/tui/components"
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 180
	maxColumns       = 4

	headerHeight = 1
	statusHeight = 1

	// tooltipMargin keeps the hover box one cell off every screen edge.
	tooltipMargin = 1
)

// grid is the cell geometry of the card grid for one terminal size.
type grid struct {
	cols    int
	widths  []int
	rows    int // visible card rows
	scroll  int // first visible card row
	numCard int
}

func newGrid(width, height, numCards, scroll int) grid {
	cw := min(width, maxContentWidth)
	cols := min(max(cw/components.MinCardWidth, 1), maxColumns)
	if numCards > 0 {
		cols = min(cols, numCards)
	}
	rows := max((height-headerHeight-statusHeight)/components.CardHeight, 1)
	return grid{
		cols:    cols,
		widths:  components.LayoutRow(cw, cols),
		rows:    rows,
		scroll:  scroll,
		numCard: numCards,
	}
}

// origin returns the screen cell of card i's top-left corner, and whether
// the card is on screen.
func (g grid) origin(i int) (x, y int, visible bool) {
	row, col := i/g.cols, i%g.cols
	if row < g.scroll || row >= g.scroll+g.rows {
		return 0, 0, false
	}
	for _, w := range g.widths[:col] {
		x += w
	}
	return x, headerHeight + (row-g.scroll)*components.CardHeight, true
}

// cardAt returns the card under screen cell (x, y), or -1.
func (g grid) cardAt(x, y int) int {
	if y < headerHeight || x < 0 {
		return -1
	}
	row := (y-headerHeight)/components.CardHeight + g.scroll
	if row >= g.scroll+g.rows {
		return -1
	}
	col, left := -1, 0
	for c, w := range g.widths {
		if x < left+w {
			col = c
			break
		}
		left += w
	}
	if col < 0 {
		return -1
	}
	i := row*g.cols + col
	if i >= g.numCard {
		return -1
	}
	return i
}

// sparkAt maps screen cell (x, y) to the sparkline under it: the card index
// and the pointer's logical canvas x. ok is false off any sparkline.
func (g grid) sparkAt(x, y int) (card int, logicalX float64, ok bool) {
	card = g.cardAt(x, y)
	if card < 0 {
		return -1, 0, false
	}
	cx, cy, _ := g.origin(card)
	sx, sy := components.SparkOrigin()
	w := components.CardInnerWidth(g.widths[card%g.cols])

	relX, relY := x-cx-sx, y-cy-sy
	if relX < 0 || relX >= w || relY < 0 || relY >= components.SparkRows {
		return -1, 0, false
	}
	// Sample the pointer at the cell center.
	return card, sparkline.ToLogical(float64(relX)+0.5, float64(w)), true
}

// ensureVisible returns the scroll offset that keeps card i on screen.
func (g grid) ensureVisible(i int) int {
	row := i / g.cols
	switch {
	case row < g.scroll:
		return row
	case row >= g.scroll+g.rows:
		return row - g.rows + 1
	}
	return g.scroll
}
