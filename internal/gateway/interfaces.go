package gateway

import (
	"context"

	"github.com/hasanstore/pembukuan/internal/model"
)

// InventoryGateway is the contract the view state controller depends on:
// period-scoped dataset fetches and the price-update command. Failures are
// always *Error values.
type InventoryGateway interface {
	FetchRecords(ctx context.Context, kind model.ViewKind, period model.Period) ([]model.InventoryRecord, error)
	UpdatePrice(ctx context.Context, recordID string, price int64) error
}

// ExpenseGateway covers the expense report and expense creation endpoints.
type ExpenseGateway interface {
	FetchExpenses(ctx context.Context, period model.Period) (model.ExpenseSummary, error)
	AddExpense(ctx context.Context, description string, amount int64, period model.Period) error
}

// RecapGateway fetches the profit recap for a period.
type RecapGateway interface {
	FetchRecap(ctx context.Context, period model.Period) (model.RecapSummary, error)
}

// ImportRequest carries a supplier invoice upload.
type ImportRequest struct {
	Filename string
	PDF      []byte
	Shipping int64
	AdminFee int64
	Period   model.Period
}

// ImportGateway uploads a supplier invoice PDF for server-side ingestion.
type ImportGateway interface {
	ImportPDF(ctx context.Context, req ImportRequest) error
}
