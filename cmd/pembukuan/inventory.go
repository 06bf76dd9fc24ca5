package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hasanstore/pembukuan/internal/auth"
	"github.com/hasanstore/pembukuan/internal/common"
	"github.com/hasanstore/pembukuan/internal/config"
	"github.com/hasanstore/pembukuan/internal/model"
	"github.com/hasanstore/pembukuan/internal/tui"
)

func inventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"stok"},
		Short:   "Browse phone inventory interactively",
		Long: `Open the interactive inventory browser.

Switch between all transactions, unsold, and sold devices for a month,
search by name or IMEI, and record sale prices.`,
		RunE: runInventory,
	}

	now := time.Now()
	cmd.Flags().IntP("month", "m", int(now.Month()), "month to display (1-12)")
	cmd.Flags().IntP("year", "y", now.Year(), "year to display")

	_ = viper.BindPFlag("inventory.month", cmd.Flags().Lookup("month"))
	_ = viper.BindPFlag("inventory.year", cmd.Flags().Lookup("year"))

	return cmd
}

func runInventory(_ *cobra.Command, _ []string) error {
	store, err := config.NewDefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open config store: %w", err)
	}

	if _, err := auth.NewService(store).RequireSession(); err != nil {
		return fmt.Errorf("%s", common.UserMessage(err))
	}

	client, err := newGatewayClient()
	if err != nil {
		return err
	}

	period := model.Period{
		Month: viper.GetInt("inventory.month"),
		Year:  viper.GetInt("inventory.year"),
	}
	if err := period.Validate(); err != nil {
		return fmt.Errorf("invalid period: %w", err)
	}

	dark := false
	if prefs, err := store.LoadPrefs(); err == nil {
		dark = prefs.DarkMode
	}

	return tui.Run(tui.Config{
		Gateway: client,
		Store:   store,
		Period:  period,
		Dark:    dark,
	})
}
