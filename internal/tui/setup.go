package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/theirongolddev/kpiboard/internal/config"
	"github.com/theirongolddev/kpiboard/internal/tui/theme"
)

// SetupValues holds the answers of the setup form.
type SetupValues struct {
	Property string
	Rooms    string
	Theme    string
}

// NewSetupForm builds the first-run form writing into v.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to kpiboard").
				Description("A few details about your property."),
			huh.NewInput().
				Title("Property name").
				Placeholder("Demo Hotel").
				Value(&v.Property),
			huh.NewInput().
				Title("Room count").
				Placeholder("180").
				Validate(validateRooms).
				Value(&v.Rooms),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
	)
}

func validateRooms(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of rooms")
	}
	return nil
}

// Apply copies the answers onto cfg. Empty answers keep cfg's values.
func (v SetupValues) Apply(cfg *config.Config) error {
	if p := strings.TrimSpace(v.Property); p != "" {
		cfg.General.Property = p
	}
	if r := strings.TrimSpace(v.Rooms); r != "" {
		if err := validateRooms(r); err != nil {
			return err
		}
		cfg.General.Rooms, _ = strconv.Atoi(r)
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	}
	return nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a *App) saveSetupConfig() {
	cfg, err := config.Load()
	if err != nil {
		a.log.Warn("loading config for setup", zap.Error(err))
	}
	if err := a.setupVals.Apply(&cfg); err != nil {
		a.log.Warn("applying setup answers", zap.Error(err))
		return
	}

	theme.SetActive(cfg.Appearance.Theme)
	a.spinner = newSpinner()
	a.opts.Property = cfg.General.Property

	if err := config.Save(cfg); err != nil {
		a.log.Warn("saving config", zap.Error(err))
	}
}
