// Package gateway talks to the remote bookkeeping API. It decodes and
// validates every response at this boundary so the rest of the application
// never sees raw wire shapes.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hasanstore/pembukuan/internal/common"
	"github.com/hasanstore/pembukuan/internal/model"
)

// Config holds gateway configuration.
type Config struct {
	// BaseURL is the API root, e.g. "http://31.25.235.140/pembukuan/Api".
	BaseURL string
	Timeout time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("gateway base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid gateway base URL: %s", c.BaseURL)
	}
	return nil
}

// Client implements all gateway interfaces against the HTTP backend.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	retryOpts  common.RetryOptions
}

// NewClient creates a new gateway client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: slog.Default().With("component", "gateway"),
		retryOpts: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// Wire shapes. Amounts may arrive as JSON numbers or numeric strings; the
// backend has done both.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*f = flexInt(n)
	return nil
}

type recordPayload struct {
	SellPrice *flexInt `json:"harga_jual"`
	ID        string   `json:"id"`
	Device    string   `json:"nama_hp"`
	Grade     string   `json:"grade"`
	IMEI      string   `json:"imei"`
	BuyPrice  flexInt  `json:"harga_beli"`
}

type recordsResponse struct {
	Data []recordPayload `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type expensePayload struct {
	ID          string  `json:"id"`
	Description string  `json:"keterangan"`
	CreatedAt   string  `json:"created_at"`
	Amount      flexInt `json:"nominal"`
}

type expensesResponse struct {
	Data struct {
		Extras        []expensePayload `json:"pengeluaran_tambahan"`
		AdminFeeTotal flexInt          `json:"total_admin"`
		ShippingTotal flexInt          `json:"total_ongkir"`
	} `json:"data"`
}

type recapPayload struct {
	TotalPurchases flexInt `json:"total_pembelian"`
	TotalSales     flexInt `json:"total_penjualan"`
	TotalExpenses  flexInt `json:"total_pengeluaran"`
	NetProfit      flexInt `json:"laba_bersih"`
	Monthly        []struct {
		MonthName string  `json:"nama_bulan"`
		Month     int     `json:"bulan"`
		Purchases flexInt `json:"pembelian"`
		Sales     flexInt `json:"penjualan"`
		Expenses  flexInt `json:"pengeluaran"`
		Profit    flexInt `json:"laba"`
	} `json:"detail_bulanan"`
}

// endpointFor maps a view to its query endpoint.
func endpointFor(kind model.ViewKind) string {
	switch kind {
	case model.ViewUnsold:
		return "belum_laku"
	case model.ViewSold:
		return "sudah_laku"
	default:
		return "transaksi"
	}
}

// FetchRecords fetches the dataset for one view of the given period.
func (c *Client) FetchRecords(ctx context.Context, kind model.ViewKind, period model.Period) ([]model.InventoryRecord, error) {
	endpoint := endpointFor(kind)
	c.logger.Info("Fetching inventory records",
		"endpoint", endpoint,
		"month", period.Month,
		"year", period.Year)

	payload := map[string]int{"bulan": period.Month, "tahun": period.Year}

	body, err := c.fetchWithRetry(ctx, func() ([]byte, error) {
		return c.postJSON(ctx, endpoint, payload)
	})
	if err != nil {
		return nil, err
	}

	var resp recordsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, newError(KindServerFault, "", fmt.Errorf("failed to decode %s response: %w", endpoint, err))
	}

	records := make([]model.InventoryRecord, 0, len(resp.Data))
	for i, p := range resp.Data {
		rec, convErr := p.toRecord(kind)
		if convErr != nil {
			return nil, newError(KindServerFault, "", fmt.Errorf("record %d in %s response: %w", i, endpoint, convErr))
		}
		records = append(records, rec)
	}

	c.logger.Info("Fetched inventory records", "endpoint", endpoint, "count", len(records))
	return records, nil
}

// toRecord validates a wire record against the view it came from.
func (p recordPayload) toRecord(kind model.ViewKind) (model.InventoryRecord, error) {
	if p.ID == "" {
		return model.InventoryRecord{}, fmt.Errorf("missing record id")
	}

	rec := model.InventoryRecord{
		ID:            p.ID,
		DeviceLabel:   p.Device,
		Grade:         p.Grade,
		IMEI:          p.IMEI,
		PurchasePrice: int64(p.BuyPrice),
	}
	if p.SellPrice != nil {
		price := int64(*p.SellPrice)
		rec.SalePrice = &price
	}

	switch kind {
	case model.ViewSold:
		if rec.SalePrice == nil {
			return model.InventoryRecord{}, fmt.Errorf("sold record %s has no sale price", p.ID)
		}
	case model.ViewUnsold:
		if rec.SalePrice != nil {
			return model.InventoryRecord{}, fmt.Errorf("unsold record %s carries a sale price", p.ID)
		}
	}

	return rec, nil
}

// UpdatePrice records a sale price for one device. It is never auto-retried;
// the caller keeps its edit session and retries explicitly.
func (c *Client) UpdatePrice(ctx context.Context, recordID string, price int64) error {
	c.logger.Info("Updating sale price", "record_id", recordID, "price", price)

	payload := map[string]any{"id": recordID, "harga_jual": price}
	if _, err := c.postJSON(ctx, "jual", payload); err != nil {
		return err
	}

	return nil
}

// FetchExpenses fetches the expense report for a period.
func (c *Client) FetchExpenses(ctx context.Context, period model.Period) (model.ExpenseSummary, error) {
	form := url.Values{}
	form.Set("bulan", strconv.Itoa(period.Month))
	form.Set("tahun", strconv.Itoa(period.Year))

	body, err := c.fetchWithRetry(ctx, func() ([]byte, error) {
		return c.postForm(ctx, "pengeluaran", form)
	})
	if err != nil {
		return model.ExpenseSummary{}, err
	}

	var resp expensesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.ExpenseSummary{}, newError(KindServerFault, "", fmt.Errorf("failed to decode expense response: %w", err))
	}

	summary := model.ExpenseSummary{
		AdminFeeTotal: int64(resp.Data.AdminFeeTotal),
		ShippingTotal: int64(resp.Data.ShippingTotal),
		Extras:        make([]model.Expense, 0, len(resp.Data.Extras)),
	}
	for _, e := range resp.Data.Extras {
		summary.Extras = append(summary.Extras, model.Expense{
			ID:          e.ID,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
			Amount:      int64(e.Amount),
		})
	}

	return summary, nil
}

// AddExpense records a new operating expense.
func (c *Client) AddExpense(ctx context.Context, description string, amount int64, period model.Period) error {
	form := url.Values{}
	form.Set("keterangan", description)
	form.Set("nominal", strconv.FormatInt(amount, 10))
	form.Set("bulan", strconv.Itoa(period.Month))
	form.Set("tahun", strconv.Itoa(period.Year))

	if _, err := c.postForm(ctx, "tambahPengeluaran", form); err != nil {
		return err
	}
	return nil
}

// FetchRecap fetches the profit recap. The backend has returned the payload
// both bare and wrapped in "data"; accept either.
func (c *Client) FetchRecap(ctx context.Context, period model.Period) (model.RecapSummary, error) {
	payload := map[string]int{"bulan": period.Month, "tahun": period.Year}

	body, err := c.fetchWithRetry(ctx, func() ([]byte, error) {
		return c.postJSON(ctx, "rekap_tahunan", payload)
	})
	if err != nil {
		return model.RecapSummary{}, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	raw := body
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		raw = envelope.Data
	}

	var rp recapPayload
	if err := json.Unmarshal(raw, &rp); err != nil {
		return model.RecapSummary{}, newError(KindServerFault, "", fmt.Errorf("failed to decode recap response: %w", err))
	}

	summary := model.RecapSummary{
		TotalPurchases: int64(rp.TotalPurchases),
		TotalSales:     int64(rp.TotalSales),
		TotalExpenses:  int64(rp.TotalExpenses),
		NetProfit:      int64(rp.NetProfit),
	}
	for _, m := range rp.Monthly {
		name := m.MonthName
		if name == "" {
			name = model.MonthName(m.Month)
		}
		summary.Monthly = append(summary.Monthly, model.MonthlyRecap{
			Month:     m.Month,
			MonthName: name,
			Purchases: int64(m.Purchases),
			Sales:     int64(m.Sales),
			Expenses:  int64(m.Expenses),
			Profit:    int64(m.Profit),
		})
	}

	return summary, nil
}

// ImportPDF uploads a supplier invoice for server-side ingestion.
func (c *Client) ImportPDF(ctx context.Context, req ImportRequest) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("pdf_file", req.Filename)
	if err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err = part.Write(req.PDF); err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}

	fields := map[string]string{
		"ongkir":      strconv.FormatInt(req.Shipping, 10),
		"biaya_admin": strconv.FormatInt(req.AdminFee, 10),
		"bulan":       strconv.Itoa(req.Period.Month),
		"tahun":       strconv.Itoa(req.Period.Year),
	}
	for k, v := range fields {
		if err = mw.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to build upload: %w", err)
		}
	}
	if err = mw.Close(); err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/import", &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	if _, err = c.do(httpReq); err != nil {
		return err
	}

	c.logger.Info("Imported supplier invoice",
		"file", req.Filename,
		"month", req.Period.Month,
		"year", req.Period.Year)
	return nil
}

// postJSON POSTs a JSON body and returns the raw response bytes.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// postForm POSTs a form-encoded body and returns the raw response bytes.
func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

// do executes the request and classifies any failure.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(KindNetworkUnreachable, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindNetworkUnreachable, "", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, newError(KindNotFound, "", fmt.Errorf("%s returned 404", req.URL.Path))
	case resp.StatusCode >= 500:
		return nil, newError(KindServerFault, "", fmt.Errorf("%s returned %d", req.URL.Path, resp.StatusCode))
	default:
		var msg messageResponse
		_ = json.Unmarshal(body, &msg)
		return nil, newError(KindRejected, msg.Message, fmt.Errorf("%s returned %d", req.URL.Path, resp.StatusCode))
	}
}

// fetchWithRetry runs a request with backoff, retrying only transient
// classifications, and always surfaces the last classified error.
func (c *Client) fetchWithRetry(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	var body []byte
	var lastErr error

	err := common.WithRetry(ctx, func() error {
		data, reqErr := fn()
		if reqErr != nil {
			lastErr = reqErr
			return retryableIf(reqErr)
		}
		body = data
		return nil
	}, c.retryOpts)
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}

	return body, nil
}

// retryableIf tags a classified error for WithRetry.
func retryableIf(err error) error {
	if gwErr, ok := err.(*Error); ok {
		return &common.RetryableError{Err: gwErr, Retryable: gwErr.Retryable()}
	}
	return &common.RetryableError{Err: err, Retryable: false}
}

// Ensure Client implements all gateway interfaces.
var (
	_ InventoryGateway = (*Client)(nil)
	_ ExpenseGateway   = (*Client)(nil)
	_ RecapGateway     = (*Client)(nil)
	_ ImportGateway    = (*Client)(nil)
)
