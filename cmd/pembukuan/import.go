package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hasanstore/pembukuan/internal/cli"
	"github.com/hasanstore/pembukuan/internal/common"
	"github.com/hasanstore/pembukuan/internal/currency"
	"github.com/hasanstore/pembukuan/internal/gateway"
	"github.com/hasanstore/pembukuan/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <invoice.pdf>",
		Short: "Import a supplier invoice PDF",
		Long: `Upload a supplier invoice so the backend records the purchased devices.

The invoice is inspected locally first so you can confirm the device
list before anything is sent.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	now := time.Now()
	cmd.Flags().IntP("month", "m", int(now.Month()), "month to book the purchases under (1-12)")
	cmd.Flags().IntP("year", "y", now.Year(), "year to book the purchases under")
	cmd.Flags().String("ongkir", "0", "shipping cost for the invoice")
	cmd.Flags().String("biaya-admin", "0", "admin fee for the invoice")
	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	shippingArg, _ := cmd.Flags().GetString("ongkir")
	adminArg, _ := cmd.Flags().GetString("biaya-admin")
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	shipping, ok := currency.ParseDigits(shippingArg)
	if !ok || shipping < 0 {
		return fmt.Errorf("ongkir harus berupa angka: %q", shippingArg)
	}
	adminFee, ok := currency.ParseDigits(adminArg)
	if !ok || adminFee < 0 {
		return fmt.Errorf("biaya admin harus berupa angka: %q", adminArg)
	}

	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}

	preview, err := importer.Inspect(path)
	if err != nil {
		common.LogError(err, "Invoice inspection failed", common.Fields{"path": path})
		return fmt.Errorf("failed to inspect invoice: %w", err)
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Invoice %s (%d halaman)", filepath.Base(path), preview.Pages)))
	for _, device := range preview.Devices {
		fmt.Println("  " + device)
	}
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
		"%d perangkat · ongkir %s · biaya admin %s · periode %s",
		preview.DeviceCount(), currency.FormatIDR(shipping), currency.FormatIDR(adminFee), period.String(),
	)))

	if !skipConfirm {
		reader := cli.NewNonBlockingReader(os.Stdin)
		fmt.Print(cli.FormatPrompt("Lanjutkan upload? (y/n)"))
		answer, err := reader.ReadLine(cmd.Context())
		if err != nil {
			return err
		}
		if answer != "y" && answer != "Y" {
			fmt.Println(cli.FormatWarning("Upload dibatalkan."))
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read invoice: %w", err)
	}

	client, err := authedClient()
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Mengupload invoice..."),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err = client.ImportPDF(cmd.Context(), gateway.ImportRequest{
		Filename: filepath.Base(path),
		PDF:      data,
		Shipping: shipping,
		AdminFee: adminFee,
		Period:   period,
	})
	close(done)
	_ = bar.Finish()

	if err != nil {
		return fmt.Errorf("%s", common.UserMessage(err))
	}

	common.LogInfo("Invoice imported", common.Fields{
		"file":    filepath.Base(path),
		"devices": preview.DeviceCount(),
		"period":  period.String(),
	})
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Invoice berhasil diimport ke %s.", period.String())))
	return nil
}
