// Package model defines the core domain types shared across the application.
package model

// ViewKind selects which lens over the inventory is active.
type ViewKind int

const (
	// ViewAllTransactions shows every record for the period, sold or not.
	ViewAllTransactions ViewKind = iota
	// ViewUnsold shows records that have no sale price yet.
	ViewUnsold
	// ViewSold shows records that have been sold.
	ViewSold
)

// String returns a human-readable name for the view.
func (k ViewKind) String() string {
	switch k {
	case ViewAllTransactions:
		return "Transaksi"
	case ViewUnsold:
		return "Belum Laku"
	case ViewSold:
		return "Sudah Laku"
	default:
		return "Unknown"
	}
}

// HasIMEI reports whether records in this view carry an IMEI column.
// The all-transactions endpoint does not return IMEIs.
func (k ViewKind) HasIMEI() bool {
	return k == ViewUnsold || k == ViewSold
}

// InventoryRecord is a single device in the books. A nil SalePrice means
// the device has not been sold.
type InventoryRecord struct {
	SalePrice     *int64
	ID            string
	DeviceLabel   string
	Grade         string
	IMEI          string
	PurchasePrice int64
}

// Sold reports whether a sale price has been recorded.
func (r InventoryRecord) Sold() bool {
	return r.SalePrice != nil
}

// Profit returns salePrice - purchasePrice, or 0 for unsold records.
func (r InventoryRecord) Profit() int64 {
	if r.SalePrice == nil {
		return 0
	}
	return *r.SalePrice - r.PurchasePrice
}
