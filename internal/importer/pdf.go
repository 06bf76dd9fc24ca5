// Package importer inspects supplier invoice PDFs before upload. The
// backend does the authoritative ingestion; the client-side pass exists so
// a wrong file is caught before it ever leaves the machine.
package importer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Preview summarizes what an invoice PDF appears to contain.
type Preview struct {
	Devices []string
	Pages   int
}

// DeviceCount returns the number of device lines detected.
func (p Preview) DeviceCount() int {
	return len(p.Devices)
}

// Supplier invoices list one device per line, description first, rupiah
// amount last.
var (
	priceLineRe = regexp.MustCompile(`(?:Rp\s*)?\d{1,3}(?:[.,]\d{3})+\s*$`)
	footerRe    = regexp.MustCompile(`(?i)(subtotal|total|jumlah|pembayaran)`)
)

// Inspect opens path, verifies it is a readable PDF, and extracts the
// device lines for preview.
func Inspect(path string) (Preview, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return Preview{}, fmt.Errorf("file must be a PDF: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		return Preview{}, fmt.Errorf("cannot read file: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	preview := Preview{Pages: r.NumPage()}

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			slog.Warn("Failed to extract text from page", "page", pageNum, "error", pageErr)
			continue
		}

		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || footerRe.MatchString(line) {
				continue
			}
			if priceLineRe.MatchString(line) {
				device := strings.TrimSpace(priceLineRe.ReplaceAllString(line, ""))
				if device != "" {
					preview.Devices = append(preview.Devices, device)
				}
			}
		}
	}

	return preview, nil
}
