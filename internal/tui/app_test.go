package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/kpiboard/internal/config"
	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/pickup"
	"github.com/theirongolddev/kpiboard/internal/pipeline"
	"github.com/theirongolddev/kpiboard/internal/sparkline"
	"github.com/theirongolddev/kpiboard/internal/store"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

var testNow = time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)

func testFactory() pickup.Factory {
	seed := uint64(11)
	return pickup.Factory{Seed: &seed, Now: func() time.Time { return testNow }}
}

func testCards() []model.Card {
	return pipeline.BuildCards(store.DefaultMetrics(testNow), nil)
}

// loadedApp returns an app sized w x h with the fixture cards loaded.
func loadedApp(t *testing.T, w, h int) App {
	t.Helper()
	a := NewApp(Options{Property: "Demo Hotel", Load: func() ([]model.Card, error) { return testCards(), nil }, Gens: testFactory()})
	a = update(t, a, tea.WindowSizeMsg{Width: w, Height: h})
	return update(t, a, loadCmd(a.opts.Load, a.opts.Gens)())
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return next
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadCmd(t *testing.T) {
	msg := loadCmd(func() ([]model.Card, error) { return testCards(), nil }, testFactory())().(cardsLoadedMsg)
	if msg.err != nil || len(msg.cards) != 8 {
		t.Fatalf("msg = %d cards, err %v", len(msg.cards), msg.err)
	}
	c := msg.cards[0]
	if c.series.Yesterday().Current != c.card.Yesterday {
		t.Errorf("yesterday = %v, want reference %v", c.series.Yesterday().Current, c.card.Yesterday)
	}
	if c.series[pickup.SeriesLen-1].Date != "2026-03-08" {
		t.Errorf("series ends %s", c.series[pickup.SeriesLen-1].Date)
	}

	failed := loadCmd(func() ([]model.Card, error) { return nil, errors.New("boom") }, testFactory())().(cardsLoadedMsg)
	if failed.err == nil {
		t.Error("expected load error")
	}
}

func TestKeyboardNavigation(t *testing.T) {
	a := loadedApp(t, 120, 40)
	if a.grid().cols != 4 {
		t.Fatalf("cols = %d, want 4", a.grid().cols)
	}

	a = update(t, a, key("right"))
	if a.cursor != 1 {
		t.Errorf("right: cursor = %d", a.cursor)
	}
	a = update(t, a, key("down"))
	if a.cursor != 5 {
		t.Errorf("down: cursor = %d", a.cursor)
	}
	a = update(t, a, key("down"))
	if a.cursor != 7 {
		t.Errorf("down past last row clamps: cursor = %d", a.cursor)
	}
	a = update(t, a, key("g"))
	if a.cursor != 0 {
		t.Errorf("g: cursor = %d", a.cursor)
	}
	a = update(t, a, key("left"))
	if a.cursor != 0 {
		t.Errorf("left at first card: cursor = %d", a.cursor)
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	a := loadedApp(t, 120, 20)
	if a.grid().rows != 1 {
		t.Fatalf("visible rows = %d, want 1", a.grid().rows)
	}
	a = update(t, a, key("down"))
	if a.cursor != 4 || a.scroll != 1 {
		t.Errorf("cursor = %d scroll = %d, want 4 and 1", a.cursor, a.scroll)
	}
	if _, y, ok := a.grid().origin(4); !ok || y != headerHeight {
		t.Errorf("card 4 origin y = %d visible = %v", y, ok)
	}
}

func TestModalOpenClose(t *testing.T) {
	a := loadedApp(t, 120, 40)
	a = update(t, a, key("enter"))
	if a.modal != 0 {
		t.Fatalf("modal = %d, want 0", a.modal)
	}
	view := a.View()
	for _, want := range []string{"Total Revenue · 7-day pickup", "Forecast", "Yesterday pickup"} {
		if !strings.Contains(view, want) {
			t.Errorf("modal missing %q", want)
		}
	}

	a = update(t, a, key("right"))
	if a.modal != 1 {
		t.Errorf("right in modal = %d, want 1", a.modal)
	}
	a = update(t, a, key("esc"))
	if a.modal != -1 {
		t.Errorf("esc: modal = %d", a.modal)
	}
}

func TestQuitAndTheme(t *testing.T) {
	a := loadedApp(t, 120, 40)

	_, cmd := a.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	theme.SetActive("flexoki-dark")
	defer theme.SetActive("flexoki-dark")
	update(t, a, key("t"))
	if theme.Active.Name != "catppuccin-mocha" {
		t.Errorf("theme = %s", theme.Active.Name)
	}
}

func TestViewMainFillsTerminal(t *testing.T) {
	a := loadedApp(t, 120, 30)
	lines := strings.Split(a.View(), "\n")
	if len(lines) != 30 {
		t.Fatalf("view lines = %d, want 30", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 120 {
			t.Errorf("line %d width = %d", i, w)
		}
	}
	if !strings.Contains(lines[0], "Demo Hotel") || !strings.Contains(lines[0], "2026-03-08") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestViewLoadErrorWithoutCards(t *testing.T) {
	a := NewApp(Options{Load: func() ([]model.Card, error) { return nil, errors.New("store unavailable") }})
	a = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})
	a = update(t, a, loadCmd(a.opts.Load, a.opts.Gens)())
	if !strings.Contains(a.View(), "store unavailable") {
		t.Error("error view should show the load error")
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValues{Property: "  Harbor Inn ", Rooms: "96", Theme: "tokyo-night"}
	if err := v.Apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.General.Property != "Harbor Inn" || cfg.General.Rooms != 96 || cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("cfg = %+v", cfg)
	}

	if err := (SetupValues{Rooms: "lots"}).Apply(&cfg); err == nil {
		t.Error("expected rooms validation error")
	}
	keep := config.DefaultConfig()
	if err := (SetupValues{}).Apply(&keep); err != nil || keep != config.DefaultConfig() {
		t.Errorf("empty answers should keep defaults: %+v %v", keep, err)
	}
}

func TestBuildStatesTone(t *testing.T) {
	states := buildStates(testCards(), testFactory())
	for _, s := range states {
		want := sparkline.Compute(s.series, s.card.IsExpense).Tone
		if s.layout.Tone != want {
			t.Errorf("%s tone = %v, want %v", s.card.Key, s.layout.Tone, want)
		}
	}
}
