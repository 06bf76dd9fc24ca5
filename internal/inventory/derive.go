package inventory

import (
	"strings"

	"github.com/hasanstore/pembukuan/internal/model"
)

// PageSizes lists the selectable page sizes, smallest first.
var PageSizes = []int{5, 10, 15, 20, 100}

// DefaultPageSize is used until the user picks another size.
const DefaultPageSize = 10

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// FilterRecords returns the records matching term, preserving input order.
// Matching is a case-insensitive substring test against the device label,
// and additionally against the IMEI when includeIMEI is set. An empty term
// matches everything.
func FilterRecords(records []model.InventoryRecord, term string, includeIMEI bool) []model.InventoryRecord {
	if term == "" {
		return records
	}

	needle := strings.ToLower(term)
	filtered := make([]model.InventoryRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.DeviceLabel), needle) {
			filtered = append(filtered, rec)
			continue
		}
		if includeIMEI && rec.IMEI != "" && strings.Contains(strings.ToLower(rec.IMEI), needle) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// PageCount returns ceil(count / pageSize), at least 1.
func PageCount(count, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices one page out of the filtered records. Page numbering is
// 1-based; out-of-range pages return an empty slice.
func Paginate(filtered []model.InventoryRecord, page, pageSize int) []model.InventoryRecord {
	if page < 1 || pageSize <= 0 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return nil
	}

	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}
