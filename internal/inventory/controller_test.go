package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasanstore/pembukuan/internal/gateway"
	"github.com/hasanstore/pembukuan/internal/model"
)

func testPeriod() model.Period {
	return model.Period{Month: 1, Year: 2024}
}

func newTestController(t *testing.T) (*Controller, *gateway.MockClient) {
	t.Helper()

	mock := gateway.NewMockClient()
	ctrl, err := NewController(mock, testPeriod())
	require.NoError(t, err)
	return ctrl, mock
}

func intPtr(v int64) *int64 { return &v }

func makeRecords(n int) []model.InventoryRecord {
	records := make([]model.InventoryRecord, n)
	for i := range records {
		records[i] = model.InventoryRecord{
			ID:            fmt.Sprintf("rec-%03d", i+1),
			DeviceLabel:   fmt.Sprintf("iPhone %d", i+1),
			PurchasePrice: int64(1_000_000 * (i + 1)),
		}
	}
	return records
}

// loadRecords drives a full fetch cycle so a view has data to work with.
func loadRecords(t *testing.T, ctrl *Controller, kind model.ViewKind, records []model.InventoryRecord) {
	t.Helper()

	ticket, err := ctrl.StartFetch(kind)
	require.NoError(t, err)
	_, err = ctrl.CompleteFetch(ticket, records)
	require.NoError(t, err)
}

func TestNewController_InvalidPeriod(t *testing.T) {
	tests := []struct {
		name  string
		month int
		year  int
	}{
		{name: "month zero", month: 0, year: 2024},
		{name: "month thirteen", month: 13, year: 2024},
		{name: "negative month", month: -1, year: 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewController(gateway.NewMockClient(), model.Period{Month: tt.month, Year: tt.year})
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}

func TestController_InitialState(t *testing.T) {
	ctrl, _ := newTestController(t)

	assert.Equal(t, model.ViewAllTransactions, ctrl.ActiveView())
	assert.Equal(t, testPeriod(), ctrl.Period())
	assert.Equal(t, "", ctrl.SearchTerm())
	assert.Equal(t, 1, ctrl.Page())
	assert.Equal(t, DefaultPageSize, ctrl.PageSize())
	assert.Empty(t, ctrl.VisiblePage())
	assert.Equal(t, 1, ctrl.TotalPages())
}

func TestController_SelectView_ResetsSearchAndPage(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(25))

	ctrl.SetSearchTerm("iphone")
	ctrl.SetPage(2)

	ctrl.SelectView(model.ViewUnsold)

	assert.Equal(t, model.ViewUnsold, ctrl.ActiveView())
	assert.Equal(t, "", ctrl.SearchTerm())
	assert.Equal(t, 1, ctrl.Page())
}

func TestController_SelectView_SameViewStillResets(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(25))

	ctrl.SetSearchTerm("iphone")
	ctrl.SetPage(2)

	ctrl.SelectView(model.ViewAllTransactions)

	assert.Equal(t, "", ctrl.SearchTerm())
	assert.Equal(t, 1, ctrl.Page())
}

func TestController_SetPeriod_KeepsDataUntilFetch(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(3))

	require.NoError(t, ctrl.SetPeriod(2, 2024))

	// January's data stays on screen until an explicit fetch replaces it.
	assert.Len(t, ctrl.VisiblePage(), 3)
	assert.Equal(t, model.Period{Month: 2, Year: 2024}, ctrl.Period())
}

func TestController_SetPeriod_Invalid(t *testing.T) {
	ctrl, _ := newTestController(t)

	err := ctrl.SetPeriod(13, 2024)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.Equal(t, testPeriod(), ctrl.Period())
}

func TestController_StartFetch_RejectsSecondFetchForSameView(t *testing.T) {
	ctrl, _ := newTestController(t)

	_, err := ctrl.StartFetch(model.ViewAllTransactions)
	require.NoError(t, err)
	assert.True(t, ctrl.Loading(model.ViewAllTransactions))

	_, err = ctrl.StartFetch(model.ViewAllTransactions)
	assert.ErrorIs(t, err, ErrFetchInProgress)

	// A different view can still start its own fetch.
	_, err = ctrl.StartFetch(model.ViewUnsold)
	assert.NoError(t, err)
}

func TestController_CompleteFetch_ReplacesDatasetAndResets(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(5))

	ctrl.SetSearchTerm("iphone 3")
	ticket, err := ctrl.StartFetch(model.ViewAllTransactions)
	require.NoError(t, err)

	count, err := ctrl.CompleteFetch(ticket, makeRecords(2))
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, "", ctrl.SearchTerm())
	assert.Equal(t, 1, ctrl.Page())
	assert.False(t, ctrl.Loading(model.ViewAllTransactions))
	assert.Len(t, ctrl.Dataset(model.ViewAllTransactions), 2)
}

func TestController_CompleteFetch_StaleAfterPeriodChange(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(3))

	ticket, err := ctrl.StartFetch(model.ViewAllTransactions)
	require.NoError(t, err)

	require.NoError(t, ctrl.SetPeriod(2, 2024))

	_, err = ctrl.CompleteFetch(ticket, makeRecords(9))
	assert.ErrorIs(t, err, ErrStaleResponse)

	// The old dataset survives; the in-flight guard is released.
	assert.Len(t, ctrl.Dataset(model.ViewAllTransactions), 3)
	assert.False(t, ctrl.Loading(model.ViewAllTransactions))
}

func TestController_CompleteFetch_StaleAfterViewChange(t *testing.T) {
	ctrl, _ := newTestController(t)

	ticket, err := ctrl.StartFetch(model.ViewAllTransactions)
	require.NoError(t, err)

	ctrl.SelectView(model.ViewSold)

	_, err = ctrl.CompleteFetch(ticket, makeRecords(4))
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.Empty(t, ctrl.Dataset(model.ViewAllTransactions))
}

func TestController_FailFetch_KeepsPreviousDataset(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(3))

	ticket, err := ctrl.StartFetch(model.ViewAllTransactions)
	require.NoError(t, err)

	ctrl.FailFetch(ticket, errors.New("connection refused"))

	assert.False(t, ctrl.Loading(model.ViewAllTransactions))
	assert.Len(t, ctrl.Dataset(model.ViewAllTransactions), 3)
}

func TestController_Fetch_Blocking(t *testing.T) {
	ctrl, mock := newTestController(t)
	mock.FetchRecordsFn = func(_ context.Context, _ model.ViewKind, _ model.Period) ([]model.InventoryRecord, error) {
		return makeRecords(7), nil
	}

	count, err := ctrl.Fetch(context.Background(), model.ViewAllTransactions)
	require.NoError(t, err)

	assert.Equal(t, 7, count)
	require.Len(t, mock.FetchRecordsCalls, 1)
	assert.Equal(t, model.ViewAllTransactions, mock.FetchRecordsCalls[0].Kind)
	assert.Equal(t, testPeriod(), mock.FetchRecordsCalls[0].Period)
}

func TestController_Fetch_BlockingError(t *testing.T) {
	ctrl, mock := newTestController(t)
	mock.FetchRecordsFn = func(_ context.Context, _ model.ViewKind, _ model.Period) ([]model.InventoryRecord, error) {
		return nil, errors.New("server exploded")
	}

	_, err := ctrl.Fetch(context.Background(), model.ViewUnsold)
	assert.Error(t, err)
	assert.False(t, ctrl.Loading(model.ViewUnsold))
}

func TestController_BeginEdit(t *testing.T) {
	ctrl, _ := newTestController(t)
	records := makeRecords(3)
	records[1].SalePrice = intPtr(2_500_000)
	loadRecords(t, ctrl, model.ViewAllTransactions, records)

	t.Run("unknown record", func(t *testing.T) {
		err := ctrl.BeginEdit("nope")
		assert.ErrorIs(t, err, ErrUnknownRecord)
	})

	t.Run("seeds draft from sale price", func(t *testing.T) {
		require.NoError(t, ctrl.BeginEdit("rec-002"))

		draft, editing := ctrl.Draft()
		assert.True(t, editing)
		assert.Equal(t, "2500000", draft)
		assert.Equal(t, "rec-002", ctrl.EditingID())

		ctrl.CancelEdit()
	})

	t.Run("empty draft for unsold record", func(t *testing.T) {
		require.NoError(t, ctrl.BeginEdit("rec-001"))

		draft, editing := ctrl.Draft()
		assert.True(t, editing)
		assert.Equal(t, "", draft)

		ctrl.CancelEdit()
	})

	t.Run("second edit rejected", func(t *testing.T) {
		require.NoError(t, ctrl.BeginEdit("rec-001"))
		err := ctrl.BeginEdit("rec-002")
		assert.ErrorIs(t, err, ErrEditConflict)
		ctrl.CancelEdit()
	})
}

func TestController_StartCommit_InvalidDrafts(t *testing.T) {
	tests := []struct {
		name  string
		draft string
	}{
		{name: "zero", draft: "0"},
		{name: "negative", draft: "-5"},
		{name: "not a number", draft: "abc"},
		{name: "empty", draft: ""},
		{name: "decimal", draft: "2500000.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, _ := newTestController(t)
			loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(1))
			require.NoError(t, ctrl.BeginEdit("rec-001"))

			require.NoError(t, ctrl.UpdateDraft(tt.draft))
			_, err := ctrl.StartCommit()
			assert.ErrorIs(t, err, ErrInvalidPrice)

			// The session stays open so the draft can be corrected.
			_, editing := ctrl.Draft()
			assert.True(t, editing)
		})
	}
}

func TestController_StartCommit_TrimsWhitespace(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(1))
	require.NoError(t, ctrl.BeginEdit("rec-001"))
	require.NoError(t, ctrl.UpdateDraft("  2500000 "))

	ticket, err := ctrl.StartCommit()
	require.NoError(t, err)
	assert.Equal(t, int64(2_500_000), ticket.Price)
	assert.Equal(t, "rec-001", ticket.RecordID)
}

func TestController_StartCommit_NoSession(t *testing.T) {
	ctrl, _ := newTestController(t)

	_, err := ctrl.StartCommit()
	assert.ErrorIs(t, err, ErrNoEditSession)
}

func TestController_StartCommit_AlreadyPending(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(1))
	require.NoError(t, ctrl.BeginEdit("rec-001"))
	require.NoError(t, ctrl.UpdateDraft("100"))

	_, err := ctrl.StartCommit()
	require.NoError(t, err)

	_, err = ctrl.StartCommit()
	assert.ErrorIs(t, err, ErrCommitInProgress)
}

func TestController_CompleteCommit_UnsoldRemovesRecord(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctrl.SelectView(model.ViewUnsold)
	records := []model.InventoryRecord{
		{ID: "a", DeviceLabel: "iPhone 11", PurchasePrice: 2_000_000, IMEI: "IMEI111"},
		{ID: "b", DeviceLabel: "iPhone 12", PurchasePrice: 3_000_000, IMEI: "IMEI222"},
		{ID: "c", DeviceLabel: "iPhone 13", PurchasePrice: 4_000_000, IMEI: "IMEI333"},
	}
	loadRecords(t, ctrl, model.ViewUnsold, records)

	require.NoError(t, ctrl.BeginEdit("b"))
	require.NoError(t, ctrl.UpdateDraft("3500000"))
	ticket, err := ctrl.StartCommit()
	require.NoError(t, err)

	ctrl.CompleteCommit(ticket)

	remaining := ctrl.Dataset(model.ViewUnsold)
	require.Len(t, remaining, 2)
	assert.Equal(t, "a", remaining[0].ID)
	assert.Equal(t, "c", remaining[1].ID)
	assert.Equal(t, "", ctrl.EditingID())

	// Sold and all-transactions datasets are never synthesized locally.
	assert.Empty(t, ctrl.Dataset(model.ViewSold))
	assert.Empty(t, ctrl.Dataset(model.ViewAllTransactions))
}

func TestController_CompleteCommit_AllTransactionsUpdatesInPlace(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(3))

	require.NoError(t, ctrl.BeginEdit("rec-002"))
	require.NoError(t, ctrl.UpdateDraft("5000000"))
	ticket, err := ctrl.StartCommit()
	require.NoError(t, err)

	ctrl.CompleteCommit(ticket)

	dataset := ctrl.Dataset(model.ViewAllTransactions)
	require.Len(t, dataset, 3)
	require.NotNil(t, dataset[1].SalePrice)
	assert.Equal(t, int64(5_000_000), *dataset[1].SalePrice)
	assert.Nil(t, dataset[0].SalePrice)
	assert.Nil(t, dataset[2].SalePrice)
}

func TestController_CompleteCommit_ClampsPageWhenLastRecordOnPageSold(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctrl.SelectView(model.ViewUnsold)

	// 11 records at page size 10: page 2 holds exactly one record.
	records := makeRecords(11)
	for i := range records {
		records[i].IMEI = fmt.Sprintf("IMEI%03d", i+1)
	}
	loadRecords(t, ctrl, model.ViewUnsold, records)
	ctrl.SetPage(2)

	require.NoError(t, ctrl.BeginEdit("rec-011"))
	require.NoError(t, ctrl.UpdateDraft("9000000"))
	ticket, err := ctrl.StartCommit()
	require.NoError(t, err)

	ctrl.CompleteCommit(ticket)

	assert.Equal(t, 1, ctrl.Page())
	assert.Len(t, ctrl.VisiblePage(), 10)
}

func TestController_FailCommit_PreservesSession(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(1))
	require.NoError(t, ctrl.BeginEdit("rec-001"))
	require.NoError(t, ctrl.UpdateDraft("100"))

	ticket, err := ctrl.StartCommit()
	require.NoError(t, err)

	ctrl.FailCommit(ticket, errors.New("timeout"))

	draft, editing := ctrl.Draft()
	assert.True(t, editing)
	assert.Equal(t, "100", draft)

	// Retry is possible after the failure.
	_, err = ctrl.StartCommit()
	assert.NoError(t, err)
}

func TestController_CommitEdit_Blocking(t *testing.T) {
	ctrl, mock := newTestController(t)
	ctrl.SelectView(model.ViewUnsold)
	loadRecords(t, ctrl, model.ViewUnsold, []model.InventoryRecord{
		{ID: "x", DeviceLabel: "iPhone 11", PurchasePrice: 2_000_000},
	})

	require.NoError(t, ctrl.BeginEdit("x"))
	require.NoError(t, ctrl.UpdateDraft("2750000"))

	require.NoError(t, ctrl.CommitEdit(context.Background()))

	require.Len(t, mock.UpdatePriceCalls, 1)
	assert.Equal(t, "x", mock.UpdatePriceCalls[0].RecordID)
	assert.Equal(t, int64(2_750_000), mock.UpdatePriceCalls[0].Price)
	assert.Empty(t, ctrl.Dataset(model.ViewUnsold))
}

func TestController_CommitEdit_GatewayError(t *testing.T) {
	ctrl, mock := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(1))
	mock.UpdatePriceFn = func(_ context.Context, _ string, _ int64) error {
		return errors.New("rejected")
	}

	require.NoError(t, ctrl.BeginEdit("rec-001"))
	require.NoError(t, ctrl.UpdateDraft("100"))

	err := ctrl.CommitEdit(context.Background())
	assert.Error(t, err)

	_, editing := ctrl.Draft()
	assert.True(t, editing)
	require.NotNil(t, ctrl.Dataset(model.ViewAllTransactions))
	assert.Nil(t, ctrl.Dataset(model.ViewAllTransactions)[0].SalePrice)
}

func TestController_Search(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctrl.SelectView(model.ViewUnsold)
	loadRecords(t, ctrl, model.ViewUnsold, []model.InventoryRecord{
		{ID: "1", DeviceLabel: "iPhone 11 Pro", IMEI: "IMEI123456"},
		{ID: "2", DeviceLabel: "Samsung S21", IMEI: "998877"},
		{ID: "3", DeviceLabel: "iPhone 13", IMEI: "554433"},
	})

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{name: "empty term matches all", term: "", wantIDs: []string{"1", "2", "3"}},
		{name: "label substring", term: "iphone", wantIDs: []string{"1", "3"}},
		{name: "case-insensitive imei", term: "imei123", wantIDs: []string{"1"}},
		{name: "imei digits", term: "9988", wantIDs: []string{"2"}},
		{name: "no match", term: "pixel", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl.SetSearchTerm(tt.term)

			visible := ctrl.VisiblePage()
			ids := make([]string, 0, len(visible))
			for _, rec := range visible {
				ids = append(ids, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestController_Search_ResetsPageOnChange(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(25))
	ctrl.SetPage(3)

	ctrl.SetSearchTerm("iphone")
	assert.Equal(t, 1, ctrl.Page())

	ctrl.SetPage(2)
	ctrl.SetSearchTerm("iphone")
	assert.Equal(t, 2, ctrl.Page(), "same term should not reset the page")
}

func TestController_Pagination(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(23))

	assert.Equal(t, 3, ctrl.TotalPages())
	assert.Len(t, ctrl.VisiblePage(), 10)

	// Out-of-range pages clamp to the boundaries.
	ctrl.SetPage(5)
	assert.Equal(t, 3, ctrl.Page())
	assert.Len(t, ctrl.VisiblePage(), 3)

	ctrl.SetPage(0)
	assert.Equal(t, 1, ctrl.Page())
}

func TestController_SetPageSize(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(23))
	ctrl.SetPage(2)

	require.NoError(t, ctrl.SetPageSize(5))
	assert.Equal(t, 1, ctrl.Page())
	assert.Equal(t, 5, ctrl.TotalPages())
	assert.Len(t, ctrl.VisiblePage(), 5)

	err := ctrl.SetPageSize(7)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
	assert.Equal(t, 5, ctrl.PageSize())
}

func TestController_VisiblePage_Deterministic(t *testing.T) {
	ctrl, _ := newTestController(t)
	loadRecords(t, ctrl, model.ViewAllTransactions, makeRecords(23))
	ctrl.SetSearchTerm("iphone 1")
	ctrl.SetPage(1)

	first := ctrl.VisiblePage()
	second := ctrl.VisiblePage()
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), ctrl.PageSize())
}
