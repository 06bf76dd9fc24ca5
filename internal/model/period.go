package model

import "fmt"

// monthNames holds the Indonesian month names the backend reports use.
var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Period scopes every inventory query to a (month, year) pair.
type Period struct {
	Month int
	Year  int
}

// Validate checks the month range.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", p.Month)
	}
	return nil
}

// String returns the period as "Bulan Tahun", e.g. "Januari 2024".
func (p Period) String() string {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Sprintf("? %d", p.Year)
	}
	return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
}

// MonthName returns the Indonesian name for a month number, or "?" if the
// number is out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return "?"
	}
	return monthNames[month-1]
}
