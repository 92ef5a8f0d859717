// Package tui provides the interactive Bubble Tea dashboard for kpiboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/pickup"
	"github.com/theirongolddev/kpiboard/internal/pipeline"
	"github.com/theirongolddev/kpiboard/internal/sparkline"
	"github.com/theirongolddev/kpiboard/internal/tui/components"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

// Options configures the dashboard.
type Options struct {
	Property string
	// Load returns the cards to show. It runs off the UI goroutine.
	Load func() ([]model.Card, error)
	Gens pickup.Factory
	// NeedSetup starts the dashboard with the first-run setup form.
	NeedSetup bool
	Log       *zap.Logger
}

// cardsLoadedMsg is sent when cards and their series are ready.
type cardsLoadedMsg struct {
	cards    []cardState
	loadTime time.Duration
	err      error
}

// cardState is one card on screen with its series and hover state.
type cardState struct {
	view   pipeline.View
	card   model.Card
	series pickup.Series
	layout sparkline.Layout
	hover  sparkline.Hover
}

// App is the root Bubble Tea model.
type App struct {
	opts Options
	log  *zap.Logger

	// Data
	cards      []cardState
	loaded     bool
	loadErr    error
	loadTime   time.Duration
	refreshing bool

	// UI state
	width    int
	height   int
	cursor   int
	scroll   int
	modal    int // drill-down card index, -1 when closed
	showHelp bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	a := App{
		opts:      opts,
		log:       log,
		modal:     -1,
		needSetup: opts.NeedSetup,
		spinner:   newSpinner(),
	}
	if a.needSetup {
		a.setupVals = &SetupValues{Property: opts.Property, Rooms: "", Theme: theme.Active.Name}
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)
	return sp
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseAllMotion,
		loadCmd(a.opts.Load, a.opts.Gens),
		a.spinner.Tick,
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func loadCmd(load func() ([]model.Card, error), gens pickup.Factory) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		if load == nil {
			return cardsLoadedMsg{err: fmt.Errorf("no card source configured")}
		}
		cards, err := load()
		if err != nil {
			return cardsLoadedMsg{err: err}
		}
		return cardsLoadedMsg{cards: buildStates(cards, gens), loadTime: time.Since(start)}
	}
}

func buildStates(cards []model.Card, gens pickup.Factory) []cardState {
	states := make([]cardState, len(cards))
	for i, c := range cards {
		s := gens.For(c.Key).Generate(c.Domain, c.Yesterday, c.IsExpense)
		states[i] = cardState{
			view:   pipeline.NewView(c),
			card:   c,
			series: s,
			layout: sparkline.Compute(s, c.IsExpense),
		}
	}
	return states
}

func (a App) grid() grid {
	return newGrid(a.width, a.height, len(a.cards), a.scroll)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.scroll = a.grid().ensureVisible(a.cursor)
		return a, nil

	case cardsLoadedMsg:
		a.refreshing = false
		a.loaded = true
		if msg.err != nil {
			a.loadErr = msg.err
			a.log.Error("loading cards", zap.Error(msg.err))
			return a, nil
		}
		a.loadErr = nil
		a.cards = msg.cards
		a.loadTime = msg.loadTime
		a.cursor = min(a.cursor, max(len(a.cards)-1, 0))
		if a.modal >= len(a.cards) {
			a.modal = -1
		}
		a.scroll = a.grid().ensureVisible(a.cursor)
		a.log.Debug("cards loaded", zap.Int("cards", len(a.cards)), zap.Duration("took", msg.loadTime))
		return a, nil

	case spinner.TickMsg:
		if a.loaded && !a.refreshing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.modal >= 0 || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup form intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if !a.loaded {
			return a, nil
		}
		return a.updateKey(msg)
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	g := a.grid()

	switch {
	case msg.Action == tea.MouseActionMotion:
		a.hoverAt(g, msg.X, msg.Y)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if i := g.cardAt(msg.X, msg.Y); i >= 0 {
			if i == a.cursor {
				a.clearHover()
				a.modal = i
			} else {
				a.cursor = i
			}
		}

	case msg.Button == tea.MouseButtonWheelUp:
		a.moveCursor(-g.cols)

	case msg.Button == tea.MouseButtonWheelDown:
		a.moveCursor(g.cols)
	}
	return a, nil
}

// hoverAt routes a pointer position to the sparkline under it and clears
// every other sparkline's hover.
func (a *App) hoverAt(g grid, x, y int) {
	card, lx, ok := g.sparkAt(x, y)
	for i := range a.cards {
		if ok && i == card {
			a.cards[i].hover.Move(lx, sparkline.Vec{X: float64(x), Y: float64(y)})
			continue
		}
		a.cards[i].hover.Leave()
	}
}

func (a *App) clearHover() {
	for i := range a.cards {
		a.cards[i].hover.Leave()
	}
}

func (a *App) moveCursor(delta int) {
	if len(a.cards) == 0 {
		return
	}
	a.cursor = min(max(a.cursor+delta, 0), len(a.cards)-1)
	a.scroll = a.grid().ensureVisible(a.cursor)
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.modal >= 0 {
		switch key {
		case "esc", "enter", "q":
			a.modal = -1
		case "left", "h":
			a.modal = max(a.modal-1, 0)
		case "right", "l":
			a.modal = min(a.modal+1, len(a.cards)-1)
		}
		return a, nil
	}

	cols := a.grid().cols
	switch key {
	case "q":
		return a, tea.Quit
	case "left", "h":
		a.moveCursor(-1)
	case "right", "l":
		a.moveCursor(1)
	case "up", "k":
		a.moveCursor(-cols)
	case "down", "j":
		a.moveCursor(cols)
	case "home", "g":
		a.moveCursor(-len(a.cards))
	case "end", "G":
		a.moveCursor(len(a.cards))
	case "enter":
		if len(a.cards) > 0 {
			a.clearHover()
			a.modal = a.cursor
		}
	case "esc":
		a.clearHover()
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(loadCmd(a.opts.Load, a.opts.Gens), a.spinner.Tick)
		}
	case "t":
		th := theme.Cycle()
		a.spinner = newSpinner()
		a.log.Debug("theme changed", zap.String("theme", th.Name))
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil && len(a.cards) == 0 {
		return a.viewError()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	if a.modal >= 0 && a.modal < len(a.cards) {
		return a.viewModal(a.cards[a.modal])
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  kpiboard needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ kpiboard"))
	b.WriteString(subtitleStyle.Render(" · Hotel KPI Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Building pickup series..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewError() string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(theme.Bad).Background(t.Surface)
	body := errStyle.Render(a.loadErr.Error()) + "\n\n" +
		lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("[r] retry  [q] quit")
	card := components.ContentCard("Could not load cards", body, min(a.width-4, 72))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	h := a.height
	g := a.grid()

	// 1. Header
	headerStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true).
		Width(w)
	title := " ◈ kpiboard"
	if a.opts.Property != "" {
		title += " · " + a.opts.Property
	}
	if len(a.cards) > 0 {
		title += " · as of " + a.cards[0].series[pickup.SeriesLen-1].Date
	}
	header := headerStyle.Render(ansi.Truncate(title, w, "…"))

	// 2. Status bar
	info := t.Name
	if a.refreshing {
		info = a.spinner.View() + " regenerating · " + info
	} else if a.loadTime > 0 {
		info += fmt.Sprintf(" · %s", a.loadTime.Round(time.Millisecond))
	}
	statusBar := components.RenderStatusBar(w, info)

	// 3. Card grid
	contentH := max(h-headerHeight-statusHeight, components.CardHeight)
	var rows []string
	for r := g.scroll; r < g.scroll+g.rows; r++ {
		first := r * g.cols
		if first >= len(a.cards) {
			break
		}
		var rendered []string
		for c := 0; c < g.cols && first+c < len(a.cards); c++ {
			rendered = append(rendered, a.renderCard(first+c, g.widths[c]))
		}
		rows = append(rows, components.CardRow(rendered))
	}
	content := strings.Join(rows, "\n")
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, w, t.Background)

	// 4. Stack vertically, then draw the hover tooltip on top
	frame := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return a.overlayTooltip(frame)
}

func (a App) renderCard(i, outerWidth int) string {
	c := a.cards[i]
	spark := components.Sparkline(c.layout, c.hover.Hovered(), components.CardInnerWidth(outerWidth), components.SparkRows)
	return components.KPICard(c.view, spark, i == a.cursor, outerWidth)
}

func (a App) overlayTooltip(frame string) string {
	for _, c := range a.cards {
		tip, ok := c.hover.Tooltip(c.series, c.card.Domain, c.card.IsExpense)
		if !ok {
			continue
		}
		box := components.Tooltip(tip)
		r := a.tooltipRect(c.hover.Anchor(), box)
		return components.Overlay(frame, box, int(r.X), int(r.Y))
	}
	return frame
}

func (a App) tooltipRect(anchor sparkline.Vec, box string) sparkline.Rect {
	size := sparkline.Size{W: float64(lipgloss.Width(box)), H: float64(lipgloss.Height(box))}
	viewport := sparkline.Size{W: float64(a.width), H: float64(a.height)}
	return sparkline.PlaceTooltip(anchor, size, viewport, tooltipMargin)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
