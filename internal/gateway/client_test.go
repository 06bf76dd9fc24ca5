package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasanstore/pembukuan/internal/common"
	"github.com/hasanstore/pembukuan/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	// Keep retries fast in tests.
	client.retryOpts = common.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
	return client, server
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid http url", baseURL: "http://31.25.235.140/pembukuan/Api", wantErr: false},
		{name: "valid https url", baseURL: "https://example.com/api", wantErr: false},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "missing scheme", baseURL: "example.com/api", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{BaseURL: tt.baseURL}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_FetchRecords(t *testing.T) {
	var gotPath string
	var gotBody map[string]int

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","nama_hp":"iPhone 11","harga_beli":2000000,"grade":"A","imei":"IMEI111"},
			{"id":"2","nama_hp":"iPhone 12","harga_beli":"3500000","grade":"B","imei":"IMEI222"}
		]}`))
	}))

	records, err := client.FetchRecords(context.Background(), model.ViewUnsold, model.Period{Month: 1, Year: 2024})
	require.NoError(t, err)

	assert.Equal(t, "/belum_laku", gotPath)
	assert.Equal(t, map[string]int{"bulan": 1, "tahun": 2024}, gotBody)

	require.Len(t, records, 2)
	assert.Equal(t, "iPhone 11", records[0].DeviceLabel)
	assert.Equal(t, int64(2_000_000), records[0].PurchasePrice)
	assert.Nil(t, records[0].SalePrice)
	// String-typed amounts decode the same as numeric ones.
	assert.Equal(t, int64(3_500_000), records[1].PurchasePrice)
}

func TestClient_FetchRecords_Endpoints(t *testing.T) {
	tests := []struct {
		name     string
		kind     model.ViewKind
		wantPath string
	}{
		{name: "all transactions", kind: model.ViewAllTransactions, wantPath: "/transaksi"},
		{name: "unsold", kind: model.ViewUnsold, wantPath: "/belum_laku"},
		{name: "sold", kind: model.ViewSold, wantPath: "/sudah_laku"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"data":[]}`))
			}))

			_, err := client.FetchRecords(context.Background(), tt.kind, model.Period{Month: 6, Year: 2025})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestClient_FetchRecords_SoldViewRequiresSalePrice(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"1","nama_hp":"iPhone 11","harga_beli":2000000}]}`))
	}))

	_, err := client.FetchRecords(context.Background(), model.ViewSold, model.Period{Month: 1, Year: 2024})

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindServerFault, gwErr.Kind)
}

func TestClient_FetchRecords_UnsoldViewRejectsSalePrice(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"1","nama_hp":"iPhone 11","harga_beli":2000000,"harga_jual":2500000}]}`))
	}))

	_, err := client.FetchRecords(context.Background(), model.ViewUnsold, model.Period{Month: 1, Year: 2024})

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindServerFault, gwErr.Kind)
}

func TestClient_FetchRecords_MissingID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"nama_hp":"iPhone 11","harga_beli":2000000}]}`))
	}))

	_, err := client.FetchRecords(context.Background(), model.ViewAllTransactions, model.Period{Month: 1, Year: 2024})
	assert.Error(t, err)
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    ErrorKind
		wantMessage string
	}{
		{
			name:        "not found",
			status:      http.StatusNotFound,
			wantKind:    KindNotFound,
			wantMessage: "Endpoint API tidak ditemukan.",
		},
		{
			name:        "server fault",
			status:      http.StatusInternalServerError,
			wantKind:    KindServerFault,
			wantMessage: "Terjadi kesalahan pada server.",
		},
		{
			name:        "rejected with backend message",
			status:      http.StatusUnprocessableEntity,
			body:        `{"message":"Data tidak lengkap"}`,
			wantKind:    KindRejected,
			wantMessage: "Data tidak lengkap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			}))

			_, err := client.FetchRecords(context.Background(), model.ViewAllTransactions, model.Period{Month: 1, Year: 2024})

			var gwErr *Error
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, tt.wantKind, gwErr.Kind)
			assert.Equal(t, tt.wantMessage, gwErr.UserMessage())
		})
	}
}

func TestClient_NetworkUnreachable(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := client.FetchRecords(context.Background(), model.ViewAllTransactions, model.Period{Month: 1, Year: 2024})

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindNetworkUnreachable, gwErr.Kind)
	assert.Equal(t, "Tidak dapat terhubung ke server. Periksa koneksi internet.", gwErr.UserMessage())
}

func TestClient_FetchRecords_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	records, err := client.FetchRecords(context.Background(), model.ViewAllTransactions, model.Period{Month: 1, Year: 2024})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 2, attempts)
}

func TestClient_UpdatePrice(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.Equal(t, "/jual", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))

	err := client.UpdatePrice(context.Background(), "42", 2_500_000)
	require.NoError(t, err)

	assert.Equal(t, "42", gotBody["id"])
	assert.Equal(t, float64(2_500_000), gotBody["harga_jual"])
}

func TestClient_UpdatePrice_NotRetried(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.UpdatePrice(context.Background(), "42", 2_500_000)
	assert.Error(t, err)
	assert.Equal(t, 1, attempts, "price updates must not be retried automatically")
}

func TestClient_FetchExpenses(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "3", r.PostForm.Get("bulan"))
		assert.Equal(t, "2025", r.PostForm.Get("tahun"))

		_, _ = w.Write([]byte(`{"data":{
			"pengeluaran_tambahan":[{"id":"1","keterangan":"Plastik segel","nominal":"50000"}],
			"total_admin":120000,
			"total_ongkir":"80000"
		}}`))
	}))

	summary, err := client.FetchExpenses(context.Background(), model.Period{Month: 3, Year: 2025})
	require.NoError(t, err)

	require.Len(t, summary.Extras, 1)
	assert.Equal(t, "Plastik segel", summary.Extras[0].Description)
	assert.Equal(t, int64(50_000), summary.Extras[0].Amount)
	assert.Equal(t, int64(120_000), summary.AdminFeeTotal)
	assert.Equal(t, int64(80_000), summary.ShippingTotal)
	assert.Equal(t, int64(250_000), summary.Total())
}

func TestClient_AddExpense(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tambahPengeluaran", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Bensin kurir", r.PostForm.Get("keterangan"))
		assert.Equal(t, "35000", r.PostForm.Get("nominal"))
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))

	err := client.AddExpense(context.Background(), "Bensin kurir", 35_000, model.Period{Month: 3, Year: 2025})
	assert.NoError(t, err)
}

func TestClient_FetchRecap(t *testing.T) {
	recapJSON := `{
		"total_pembelian": 10000000,
		"total_penjualan": "14000000",
		"total_pengeluaran": 500000,
		"laba_bersih": 3500000,
		"detail_bulanan": [
			{"bulan": 1, "pembelian": 10000000, "penjualan": 14000000, "pengeluaran": 500000, "laba": 3500000}
		]
	}`

	tests := []struct {
		name string
		body string
	}{
		{name: "bare payload", body: recapJSON},
		{name: "wrapped in data", body: `{"data":` + recapJSON + `}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))

			summary, err := client.FetchRecap(context.Background(), model.Period{Month: 1, Year: 2025})
			require.NoError(t, err)

			assert.Equal(t, int64(10_000_000), summary.TotalPurchases)
			assert.Equal(t, int64(14_000_000), summary.TotalSales)
			assert.Equal(t, int64(3_500_000), summary.NetProfit)
			require.Len(t, summary.Monthly, 1)
			assert.Equal(t, "Januari", summary.Monthly[0].MonthName)
		})
	}
}

func TestClient_ImportPDF(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/import", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "15000", r.PostForm.Get("ongkir"))
		assert.Equal(t, "5000", r.PostForm.Get("biaya_admin"))
		assert.Equal(t, "2", r.PostForm.Get("bulan"))
		assert.Equal(t, "2025", r.PostForm.Get("tahun"))

		file, header, err := r.FormFile("pdf_file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "invoice.pdf", header.Filename)

		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))

	err := client.ImportPDF(context.Background(), ImportRequest{
		Filename: "invoice.pdf",
		PDF:      []byte("%PDF-1.4 fake"),
		Shipping: 15_000,
		AdminFee: 5_000,
		Period:   model.Period{Month: 2, Year: 2025},
	})
	assert.NoError(t, err)
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "number", input: `123`, want: 123},
		{name: "string", input: `"456"`, want: 456},
		{name: "null", input: `null`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "garbage", input: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexInt
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, int64(f))
		})
	}
}
