package tui

import (
	"github.com/hasanstore/pembukuan/internal/inventory"
	"github.com/hasanstore/pembukuan/internal/model"
)

// Network response messages.
type fetchDoneMsg struct {
	err     error
	records []model.InventoryRecord
	ticket  inventory.FetchTicket
}

type priceUpdatedMsg struct {
	err    error
	ticket inventory.CommitTicket
}

// Status line messages.
type statusExpiredMsg struct {
	seq int
}

// statusKind selects the status line style.
type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
)
