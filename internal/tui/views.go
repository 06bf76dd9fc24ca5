package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hasanstore/pembukuan/internal/currency"
	"github.com/hasanstore/pembukuan/internal/model"
)

// View renders the inventory screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Pembukuan Hasan Store")
	period := m.theme.Subtitle.Render(m.controller.Period().String())

	if m.mode == modePeriod {
		return title + "  " + m.theme.Subtitle.Render("Periode: ") + m.periodInput.View()
	}
	return title + "  " + period
}

func (m Model) renderTabs() string {
	kinds := []model.ViewKind{model.ViewAllTransactions, model.ViewUnsold, model.ViewSold}

	tabs := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		label := kind.String()
		if kind == m.controller.ActiveView() {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	if m.mode == modeSearch {
		line += "  " + m.theme.Subtitle.Render("Cari: ") + m.searchInput.View()
	} else if term := m.controller.SearchTerm(); term != "" {
		line += "  " + m.theme.Muted.Render(fmt.Sprintf("cari: %q", term))
	}

	if m.controller.Loading(m.controller.ActiveView()) {
		line += "  " + m.spinner.View() + m.theme.Muted.Render(" memuat...")
	}

	return line
}

func (m Model) renderTable() string {
	kind := m.controller.ActiveView()
	visible := m.controller.VisiblePage()

	if len(visible) == 0 {
		if m.controller.Loading(kind) {
			return m.theme.Muted.Render("  Memuat data...")
		}
		if m.controller.SearchTerm() != "" {
			return m.theme.Muted.Render("  Tidak ada hasil untuk pencarian ini.")
		}
		return m.theme.Muted.Render("  Belum ada data. Tekan r untuk memuat.")
	}

	withIMEI := kind.HasIMEI()

	var b strings.Builder
	b.WriteString(m.renderRow(headerRow(withIMEI), false, true))
	b.WriteString("\n")

	editingID, _ := m.editingRecordID()
	for i, rec := range visible {
		cells := recordRow(rec, withIMEI)
		if m.mode == modeEdit && rec.ID == editingID {
			cells[saleColumn(withIMEI)] = m.editInput.View()
		}
		b.WriteString(m.renderRecordRow(cells, rec, i == m.cursor))
		if i < len(visible)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) editingRecordID() (string, bool) {
	id := m.controller.EditingID()
	return id, id != ""
}

// Column widths keep rows aligned without a table dependency.
var columnWidths = map[string]int{
	"label":  28,
	"grade":  7,
	"imei":   17,
	"amount": 15,
}

func headerRow(withIMEI bool) []string {
	if withIMEI {
		return []string{"Nama HP", "Grade", "IMEI", "Harga Beli", "Harga Jual", "Untung"}
	}
	return []string{"Nama HP", "Harga Beli", "Harga Jual", "Untung"}
}

func recordRow(rec model.InventoryRecord, withIMEI bool) []string {
	sale := "-"
	profit := "-"
	if rec.Sold() {
		sale = currency.FormatIDR(*rec.SalePrice)
		profit = currency.FormatIDR(rec.Profit())
	}

	if withIMEI {
		grade := rec.Grade
		if grade == "" {
			grade = "-"
		}
		imei := rec.IMEI
		if imei == "" {
			imei = "-"
		}
		return []string{rec.DeviceLabel, grade, imei, currency.FormatIDR(rec.PurchasePrice), sale, profit}
	}
	return []string{rec.DeviceLabel, currency.FormatIDR(rec.PurchasePrice), sale, profit}
}

// saleColumn is the index of the sale price cell in a row.
func saleColumn(withIMEI bool) int {
	if withIMEI {
		return 4
	}
	return 2
}

func (m Model) renderRow(cells []string, selected, header bool) string {
	parts := padCells(cells)
	row := "  " + strings.Join(parts, " ")

	switch {
	case header:
		return m.theme.Bold.Render(row)
	case selected:
		return m.theme.Selected.Render(row)
	default:
		return m.theme.Normal.Render(row)
	}
}

// renderRecordRow styles a data row, coloring the profit cell by sign.
// Selected rows keep the uniform highlight so the cursor stays readable.
func (m Model) renderRecordRow(cells []string, rec model.InventoryRecord, selected bool) string {
	if selected {
		return m.renderRow(cells, true, false)
	}

	parts := padCells(cells)
	if rec.Sold() {
		last := len(parts) - 1
		if rec.Profit() < 0 {
			parts[last] = m.theme.Loss.Render(parts[last])
		} else {
			parts[last] = m.theme.Profit.Render(parts[last])
		}
	}
	return m.theme.Normal.Render("  ") + strings.Join(parts, " ")
}

func padCells(cells []string) []string {
	widths := []int{columnWidths["label"], columnWidths["amount"], columnWidths["amount"], columnWidths["amount"]}
	if len(cells) == 6 {
		widths = []int{columnWidths["label"], columnWidths["grade"], columnWidths["imei"], columnWidths["amount"], columnWidths["amount"], columnWidths["amount"]}
	}

	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = pad(cell, widths[i])
	}
	return parts
}

func pad(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func (m Model) renderFooter() string {
	return m.theme.Muted.Render(fmt.Sprintf(
		"  Hal %d/%d · %d item · %d per halaman",
		m.controller.Page(),
		m.controller.TotalPages(),
		m.controller.FilteredCount(),
		m.controller.PageSize(),
	))
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusKind == statusError {
		return "  " + m.theme.StatusError.Render(m.status)
	}
	return "  " + m.theme.StatusSuccess.Render(m.status)
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, 8)
	for _, binding := range m.keymap.ShortHelp() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Muted.Render("  " + strings.Join(parts, " · "))
}
