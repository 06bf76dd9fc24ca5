package gateway

import (
	"context"

	"github.com/hasanstore/pembukuan/internal/model"
)

// MockClient is a mock implementation of the gateway interfaces for testing.
type MockClient struct {
	// Functions that can be set by tests to control behavior
	FetchRecordsFn  func(ctx context.Context, kind model.ViewKind, period model.Period) ([]model.InventoryRecord, error)
	UpdatePriceFn   func(ctx context.Context, recordID string, price int64) error
	FetchExpensesFn func(ctx context.Context, period model.Period) (model.ExpenseSummary, error)
	AddExpenseFn    func(ctx context.Context, description string, amount int64, period model.Period) error
	FetchRecapFn    func(ctx context.Context, period model.Period) (model.RecapSummary, error)
	ImportPDFFn     func(ctx context.Context, req ImportRequest) error

	// Call tracking
	FetchRecordsCalls []FetchRecordsCall
	UpdatePriceCalls  []UpdatePriceCall
}

// FetchRecordsCall records the parameters of a FetchRecords call.
type FetchRecordsCall struct {
	Kind   model.ViewKind
	Period model.Period
}

// UpdatePriceCall records the parameters of an UpdatePrice call.
type UpdatePriceCall struct {
	RecordID string
	Price    int64
}

// NewMockClient creates a new mock gateway client.
func NewMockClient() *MockClient {
	return &MockClient{
		FetchRecordsCalls: []FetchRecordsCall{},
		UpdatePriceCalls:  []UpdatePriceCall{},
	}
}

// FetchRecords implements InventoryGateway.
func (m *MockClient) FetchRecords(ctx context.Context, kind model.ViewKind, period model.Period) ([]model.InventoryRecord, error) {
	m.FetchRecordsCalls = append(m.FetchRecordsCalls, FetchRecordsCall{Kind: kind, Period: period})

	if m.FetchRecordsFn != nil {
		return m.FetchRecordsFn(ctx, kind, period)
	}
	return []model.InventoryRecord{}, nil
}

// UpdatePrice implements InventoryGateway.
func (m *MockClient) UpdatePrice(ctx context.Context, recordID string, price int64) error {
	m.UpdatePriceCalls = append(m.UpdatePriceCalls, UpdatePriceCall{RecordID: recordID, Price: price})

	if m.UpdatePriceFn != nil {
		return m.UpdatePriceFn(ctx, recordID, price)
	}
	return nil
}

// FetchExpenses implements ExpenseGateway.
func (m *MockClient) FetchExpenses(ctx context.Context, period model.Period) (model.ExpenseSummary, error) {
	if m.FetchExpensesFn != nil {
		return m.FetchExpensesFn(ctx, period)
	}
	return model.ExpenseSummary{}, nil
}

// AddExpense implements ExpenseGateway.
func (m *MockClient) AddExpense(ctx context.Context, description string, amount int64, period model.Period) error {
	if m.AddExpenseFn != nil {
		return m.AddExpenseFn(ctx, description, amount, period)
	}
	return nil
}

// FetchRecap implements RecapGateway.
func (m *MockClient) FetchRecap(ctx context.Context, period model.Period) (model.RecapSummary, error) {
	if m.FetchRecapFn != nil {
		return m.FetchRecapFn(ctx, period)
	}
	return model.RecapSummary{}, nil
}

// ImportPDF implements ImportGateway.
func (m *MockClient) ImportPDF(ctx context.Context, req ImportRequest) error {
	if m.ImportPDFFn != nil {
		return m.ImportPDFFn(ctx, req)
	}
	return nil
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.FetchRecordsCalls = []FetchRecordsCall{}
	m.UpdatePriceCalls = []UpdatePriceCall{}
}

// Ensure MockClient implements the gateway interfaces.
var (
	_ InventoryGateway = (*MockClient)(nil)
	_ ExpenseGateway   = (*MockClient)(nil)
	_ RecapGateway     = (*MockClient)(nil)
	_ ImportGateway    = (*MockClient)(nil)
)
