// Package inventory holds the view state controller: the single owner of
// the three period-scoped datasets, the active view, search and pagination
// state, and the one edit session. All remote operations are split into a
// synchronous start (which captures a snapshot ticket and sets the
// in-flight guard) and a synchronous completion (which applies the response
// or discards it as stale). The controller is single-owner state: one
// goroutine drives it, and responses re-enter through the completion calls.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hasanstore/pembukuan/internal/gateway"
	"github.com/hasanstore/pembukuan/internal/model"
)

// Controller is the single source of truth for which records are visible,
// in what order, on what page.
type Controller struct {
	gateway  gateway.InventoryGateway
	logger   *slog.Logger
	datasets map[model.ViewKind][]model.InventoryRecord
	loading  map[model.ViewKind]bool
	seq      map[model.ViewKind]uint64
	edit     *editSession
	search   string
	period   model.Period
	view     model.ViewKind
	page     int
	pageSize int
}

// editSession tracks the one record being edited, the view it was sourced
// from, and whether a price update is in flight for it.
type editSession struct {
	recordID string
	draft    string
	source   model.ViewKind
	pending  bool
}

// FetchTicket tags an outstanding fetch with the state it was issued under.
type FetchTicket struct {
	Kind   model.ViewKind
	Period model.Period
	view   model.ViewKind
	seq    uint64
}

// CommitTicket tags an outstanding price update.
type CommitTicket struct {
	RecordID string
	Price    int64
	source   model.ViewKind
}

// NewController creates a controller with empty datasets for the given
// starting period.
func NewController(gw gateway.InventoryGateway, period model.Period) (*Controller, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	return &Controller{
		gateway: gw,
		logger:  slog.Default().With("component", "inventory"),
		datasets: map[model.ViewKind][]model.InventoryRecord{
			model.ViewAllTransactions: {},
			model.ViewUnsold:          {},
			model.ViewSold:            {},
		},
		loading:  make(map[model.ViewKind]bool),
		seq:      make(map[model.ViewKind]uint64),
		period:   period,
		view:     model.ViewAllTransactions,
		page:     1,
		pageSize: DefaultPageSize,
	}, nil
}

// ActiveView returns the currently active view.
func (c *Controller) ActiveView() model.ViewKind { return c.view }

// Period returns the selected period.
func (c *Controller) Period() model.Period { return c.period }

// SearchTerm returns the current search term.
func (c *Controller) SearchTerm() string { return c.search }

// Page returns the current 1-based page number.
func (c *Controller) Page() int { return c.page }

// PageSize returns the current page size.
func (c *Controller) PageSize() int { return c.pageSize }

// Loading reports whether a fetch for the given view is outstanding.
func (c *Controller) Loading(kind model.ViewKind) bool { return c.loading[kind] }

// Dataset returns a copy of a view's dataset.
func (c *Controller) Dataset(kind model.ViewKind) []model.InventoryRecord {
	src := c.datasets[kind]
	out := make([]model.InventoryRecord, len(src))
	copy(out, src)
	return out
}

// SelectView switches the active view, clearing the search term and
// resetting to the first page. No network call happens here.
func (c *Controller) SelectView(kind model.ViewKind) {
	c.view = kind
	c.search = ""
	c.page = 1
}

// SetPeriod changes the selected period. It does not fetch; data already on
// screen stays until an explicit fetch replaces it.
func (c *Controller) SetPeriod(month, year int) error {
	p := model.Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	c.period = p
	return nil
}

// StartFetch marks a fetch as outstanding for the view and returns the
// ticket its completion must present. A second fetch for the same view
// while one is outstanding is rejected.
func (c *Controller) StartFetch(kind model.ViewKind) (FetchTicket, error) {
	if c.loading[kind] {
		return FetchTicket{}, ErrFetchInProgress
	}

	c.seq[kind]++
	c.loading[kind] = true
	return FetchTicket{
		Kind:   kind,
		Period: c.period,
		view:   c.view,
		seq:    c.seq[kind],
	}, nil
}

// CompleteFetch applies a successful fetch, replacing the view's dataset
// wholesale and resetting search and page. A response whose ticket no
// longer matches the controller state (period or active view changed, or a
// newer fetch superseded it) is discarded and ErrStaleResponse returned.
// Returns the applied record count.
func (c *Controller) CompleteFetch(ticket FetchTicket, records []model.InventoryRecord) (int, error) {
	if ticket.seq != c.seq[ticket.Kind] {
		// A newer fetch owns the loading flag; leave it alone.
		return 0, ErrStaleResponse
	}
	c.loading[ticket.Kind] = false

	if ticket.Period != c.period || ticket.view != c.view {
		c.logger.Debug("Discarding stale fetch response",
			"kind", ticket.Kind.String(),
			"requested_period", ticket.Period.String(),
			"current_period", c.period.String())
		return 0, ErrStaleResponse
	}

	c.datasets[ticket.Kind] = records
	c.search = ""
	c.page = 1

	c.logger.Info("Dataset replaced",
		"kind", ticket.Kind.String(),
		"period", ticket.Period.String(),
		"count", len(records))
	return len(records), nil
}

// FailFetch releases the in-flight guard after a failed fetch. The previous
// dataset, if any, stays visible.
func (c *Controller) FailFetch(ticket FetchTicket, err error) {
	if ticket.seq == c.seq[ticket.Kind] {
		c.loading[ticket.Kind] = false
	}
	c.logger.Warn("Fetch failed",
		"kind", ticket.Kind.String(),
		"period", ticket.Period.String(),
		"error", err)
}

// Fetch runs the full fetch cycle against the gateway, blocking the caller.
// Returns the record count on success.
func (c *Controller) Fetch(ctx context.Context, kind model.ViewKind) (int, error) {
	ticket, err := c.StartFetch(kind)
	if err != nil {
		return 0, err
	}

	records, err := c.gateway.FetchRecords(ctx, kind, ticket.Period)
	if err != nil {
		c.FailFetch(ticket, err)
		return 0, err
	}

	return c.CompleteFetch(ticket, records)
}

// BeginEdit opens the edit session for one record in the active view,
// seeding the draft from its current sale price.
func (c *Controller) BeginEdit(recordID string) error {
	if c.edit != nil {
		return ErrEditConflict
	}

	rec, ok := c.findActive(recordID)
	if !ok {
		return ErrUnknownRecord
	}

	draft := ""
	if rec.SalePrice != nil {
		draft = strconv.FormatInt(*rec.SalePrice, 10)
	}

	c.edit = &editSession{
		recordID: recordID,
		draft:    draft,
		source:   c.view,
	}
	return nil
}

// EditingID returns the record under edit, or "" if none.
func (c *Controller) EditingID() string {
	if c.edit == nil {
		return ""
	}
	return c.edit.recordID
}

// Draft returns the in-progress draft value and whether an edit is open.
func (c *Controller) Draft() (string, bool) {
	if c.edit == nil {
		return "", false
	}
	return c.edit.draft, true
}

// UpdateDraft replaces the draft text. No validation happens here.
func (c *Controller) UpdateDraft(value string) error {
	if c.edit == nil {
		return ErrNoEditSession
	}
	c.edit.draft = value
	return nil
}

// CancelEdit closes the edit session without a network call.
func (c *Controller) CancelEdit() {
	c.edit = nil
}

// StartCommit validates the draft and returns the ticket for the price
// update command. The session stays open; on an invalid draft the caller
// may fix the draft and try again.
func (c *Controller) StartCommit() (CommitTicket, error) {
	if c.edit == nil {
		return CommitTicket{}, ErrNoEditSession
	}
	if c.edit.pending {
		return CommitTicket{}, ErrCommitInProgress
	}

	price, err := strconv.ParseInt(strings.TrimSpace(c.edit.draft), 10, 64)
	if err != nil || price <= 0 {
		return CommitTicket{}, ErrInvalidPrice
	}

	c.edit.pending = true
	return CommitTicket{
		RecordID: c.edit.recordID,
		Price:    price,
		source:   c.edit.source,
	}, nil
}

// CompleteCommit applies the confirmed price update to the local dataset
// and closes the edit session. The mutation rule depends on the view the
// record was sourced from: the unsold view drops the record (the sold view
// is re-fetched from the backend, never synthesized locally); other views
// update the record in place.
func (c *Controller) CompleteCommit(ticket CommitTicket) {
	switch ticket.source {
	case model.ViewUnsold:
		c.datasets[model.ViewUnsold] = removeRecord(c.datasets[model.ViewUnsold], ticket.RecordID)
	default:
		setSalePrice(c.datasets[ticket.source], ticket.RecordID, ticket.Price)
	}

	c.edit = nil
	c.clampPage()

	c.logger.Info("Sale price recorded",
		"record_id", ticket.RecordID,
		"price", ticket.Price,
		"view", ticket.source.String())
}

// FailCommit releases the in-flight flag but preserves the edit session so
// the user can retry or cancel.
func (c *Controller) FailCommit(ticket CommitTicket, err error) {
	if c.edit != nil && c.edit.recordID == ticket.RecordID {
		c.edit.pending = false
	}
	c.logger.Warn("Price update failed", "record_id", ticket.RecordID, "error", err)
}

// CommitEdit runs the full commit cycle against the gateway, blocking the
// caller.
func (c *Controller) CommitEdit(ctx context.Context) error {
	ticket, err := c.StartCommit()
	if err != nil {
		return err
	}

	if err := c.gateway.UpdatePrice(ctx, ticket.RecordID, ticket.Price); err != nil {
		c.FailCommit(ticket, err)
		return err
	}

	c.CompleteCommit(ticket)
	return nil
}

// SetSearchTerm updates the search term, resetting to the first page when
// it changes.
func (c *Controller) SetSearchTerm(term string) {
	if term == c.search {
		return
	}
	c.search = term
	c.page = 1
}

// SetPageSize switches the page size, resetting to the first page.
func (c *Controller) SetPageSize(size int) error {
	if !ValidPageSize(size) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	if size == c.pageSize {
		return nil
	}
	c.pageSize = size
	c.page = 1
	return nil
}

// SetPage moves to the given page, clamped to [1, TotalPages].
func (c *Controller) SetPage(page int) {
	total := c.TotalPages()
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	c.page = page
}

// FilteredCount returns the number of records in the active view matching
// the search term.
func (c *Controller) FilteredCount() int {
	return len(c.filteredActive())
}

// TotalPages returns the page count for the current filter and page size,
// at least 1.
func (c *Controller) TotalPages() int {
	return PageCount(c.FilteredCount(), c.pageSize)
}

// VisiblePage derives the currently displayed slice of records. Pure with
// respect to controller state: same state, same result.
func (c *Controller) VisiblePage() []model.InventoryRecord {
	return Paginate(c.filteredActive(), c.page, c.pageSize)
}

func (c *Controller) filteredActive() []model.InventoryRecord {
	return FilterRecords(c.datasets[c.view], c.search, c.view.HasIMEI())
}

func (c *Controller) findActive(recordID string) (model.InventoryRecord, bool) {
	for _, rec := range c.datasets[c.view] {
		if rec.ID == recordID {
			return rec, true
		}
	}
	return model.InventoryRecord{}, false
}

// clampPage pulls the current page back into range after the filtered set
// shrank.
func (c *Controller) clampPage() {
	if total := c.TotalPages(); c.page > total {
		c.page = total
	}
}

func removeRecord(records []model.InventoryRecord, id string) []model.InventoryRecord {
	out := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			out = append(out, rec)
		}
	}
	return out
}

func setSalePrice(records []model.InventoryRecord, id string, price int64) {
	for i := range records {
		if records[i].ID == id {
			p := price
			records[i].SalePrice = &p
			return
		}
	}
}
