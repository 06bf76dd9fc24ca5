package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hasanstore/pembukuan/internal/auth"
	"github.com/hasanstore/pembukuan/internal/cli"
	"github.com/hasanstore/pembukuan/internal/common"
	"github.com/hasanstore/pembukuan/internal/config"
	"github.com/hasanstore/pembukuan/internal/currency"
	"github.com/hasanstore/pembukuan/internal/gateway"
	"github.com/hasanstore/pembukuan/internal/model"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"pengeluaran"},
		Short:   "View and record monthly expenses",
	}

	now := time.Now()
	cmd.PersistentFlags().IntP("month", "m", int(now.Month()), "month (1-12)")
	cmd.PersistentFlags().IntP("year", "y", now.Year(), "year")

	cmd.AddCommand(expensesListCmd())
	cmd.AddCommand(expensesAddCmd())

	return cmd
}

func expensesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the expense breakdown for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := periodFromFlags(cmd)
			if err != nil {
				return err
			}

			client, err := authedClient()
			if err != nil {
				return err
			}

			summary, err := client.FetchExpenses(cmd.Context(), period)
			if err != nil {
				return fmt.Errorf("%s", common.UserMessage(err))
			}

			var b strings.Builder
			for _, exp := range summary.Extras {
				fmt.Fprintf(&b, "%-32s %s\n", exp.Description, currency.FormatIDR(exp.Amount))
			}
			if len(summary.Extras) == 0 {
				b.WriteString("Tidak ada pengeluaran tambahan.\n")
			}
			b.WriteString("\n")
			fmt.Fprintf(&b, "%-32s %s\n", "Total ongkir", currency.FormatIDR(summary.ShippingTotal))
			fmt.Fprintf(&b, "%-32s %s\n", "Total biaya admin", currency.FormatIDR(summary.AdminFeeTotal))
			fmt.Fprintf(&b, "%-32s %s", "Total keseluruhan", currency.FormatIDR(summary.Total()))

			fmt.Println(cli.RenderBox(cli.MoneyIcon+" Pengeluaran "+period.String(), b.String()))
			return nil
		},
	}
}

func expensesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <keterangan> <nominal>",
		Short: "Record a new expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := periodFromFlags(cmd)
			if err != nil {
				return err
			}

			amount, ok := currency.ParseDigits(args[1])
			if !ok || amount <= 0 {
				return fmt.Errorf("nominal harus berupa angka positif: %q", args[1])
			}

			client, err := authedClient()
			if err != nil {
				return err
			}

			if err := client.AddExpense(cmd.Context(), args[0], amount, period); err != nil {
				return fmt.Errorf("%s", common.UserMessage(err))
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Pengeluaran %q (%s) tersimpan.", args[0], currency.FormatIDR(amount))))
			return nil
		},
	}
	return cmd
}

// periodFromFlags reads the month/year flags shared by report commands.
func periodFromFlags(cmd *cobra.Command) (model.Period, error) {
	month, _ := cmd.Flags().GetInt("month")
	year, _ := cmd.Flags().GetInt("year")

	period := model.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return model.Period{}, fmt.Errorf("invalid period: %w", err)
	}
	return period, nil
}

// authedClient checks the stored session and builds the backend client.
func authedClient() (*gateway.Client, error) {
	store, err := config.NewDefaultStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open config store: %w", err)
	}

	if _, err := auth.NewService(store).RequireSession(); err != nil {
		return nil, fmt.Errorf("%s", common.UserMessage(err))
	}

	return newGatewayClient()
}
