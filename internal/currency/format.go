// Package currency renders integer rupiah amounts the way the backend's
// reports do: "Rp 2.000.000", no decimal digits.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// idr formats whole-rupiah amounts. go-money's built-in IDR currency keeps
// two fraction digits, so a dedicated formatter is used instead.
var idr = money.NewFormatter(0, ",", ".", "Rp", "$ 1")

// FormatIDR renders an integer rupiah amount, e.g. 2500000 -> "Rp 2.500.000".
func FormatIDR(amount int64) string {
	return idr.Format(amount)
}

// ParseDigits extracts the numeric value from user input that may carry
// grouping separators or a currency prefix, e.g. "Rp 1.500.000" -> 1500000.
// Returns false when the input contains no digits.
func ParseDigits(s string) (int64, bool) {
	var n int64
	seen := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			n = n*10 + int64(r-'0')
			seen = true
		case r == '.' || r == ',' || r == ' ':
			// grouping noise, skip
		case !seen && (r == 'R' || r == 'p'):
			// "Rp" prefix
		default:
			return 0, false
		}
	}
	return n, seen
}
