package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hasanstore/pembukuan/internal/config"
	"github.com/hasanstore/pembukuan/internal/gateway"
	"github.com/hasanstore/pembukuan/internal/inventory"
	"github.com/hasanstore/pembukuan/internal/model"
)

// Config holds everything the inventory screen needs to run.
type Config struct {
	Gateway gateway.InventoryGateway
	Store   config.Store
	Period  model.Period
	Dark    bool
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Gateway == nil {
		return fmt.Errorf("gateway is required")
	}
	if err := c.Period.Validate(); err != nil {
		return fmt.Errorf("invalid period: %w", err)
	}
	return nil
}

// Run starts the inventory TUI and blocks until the user quits.
func Run(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctrl, err := inventory.NewController(cfg.Gateway, cfg.Period)
	if err != nil {
		return fmt.Errorf("creating controller: %w", err)
	}

	m := NewModel(ctrl, cfg.Gateway, cfg.Store, cfg.Dark)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
