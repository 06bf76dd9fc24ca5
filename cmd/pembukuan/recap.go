package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hasanstore/pembukuan/internal/cli"
	"github.com/hasanstore/pembukuan/internal/common"
	"github.com/hasanstore/pembukuan/internal/currency"
	"github.com/hasanstore/pembukuan/internal/model"
)

func recapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recap",
		Aliases: []string{"rekap"},
		Short:   "Show the yearly profit recap",
		Long: `Summarize a year of bookkeeping.

Shows purchases, sales, expenses, and net profit per month plus the
yearly totals.`,
		RunE: runRecap,
	}

	cmd.Flags().IntP("year", "y", time.Now().Year(), "year to summarize")

	return cmd
}

func runRecap(cmd *cobra.Command, _ []string) error {
	year, _ := cmd.Flags().GetInt("year")

	client, err := authedClient()
	if err != nil {
		return err
	}

	// The backend keys the recap on the year; January stands in for the
	// month field the endpoint ignores.
	summary, err := client.FetchRecap(cmd.Context(), model.Period{Month: 1, Year: year})
	if err != nil {
		return fmt.Errorf("%s", common.UserMessage(err))
	}

	var b strings.Builder
	for _, m := range summary.Monthly {
		name := m.MonthName
		if name == "" {
			name = model.MonthName(m.Month)
		}
		fmt.Fprintf(&b, "%-10s  beli %-14s  jual %-14s  untung %s\n",
			name,
			currency.FormatIDR(m.Purchases),
			currency.FormatIDR(m.Sales),
			currency.FormatIDR(m.Profit),
		)
	}
	if len(summary.Monthly) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%-20s %s\n", "Total pembelian", currency.FormatIDR(summary.TotalPurchases))
	fmt.Fprintf(&b, "%-20s %s\n", "Total penjualan", currency.FormatIDR(summary.TotalSales))
	fmt.Fprintf(&b, "%-20s %s\n", "Total pengeluaran", currency.FormatIDR(summary.TotalExpenses))
	fmt.Fprintf(&b, "%-20s %s", "Laba bersih", currency.FormatIDR(summary.NetProfit))

	fmt.Println(cli.RenderBox(fmt.Sprintf("%s Rekap Tahunan %d", cli.ChartIcon, year), b.String()))
	return nil
}
