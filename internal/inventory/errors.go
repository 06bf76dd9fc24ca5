package inventory

import "errors"

// Validation and state errors surfaced by the controller. These are all
// resolved locally and never reach the network.
var (
	// ErrInvalidPeriod indicates a month outside 1..12.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrInvalidPrice indicates a draft that is not a positive whole number.
	ErrInvalidPrice = errors.New("sale price must be a positive number")
	// ErrInvalidPageSize indicates a page size outside the allowed set.
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrEditConflict indicates a second edit was attempted while one is open.
	ErrEditConflict = errors.New("another record is already being edited")
	// ErrNoEditSession indicates a commit or draft update without an open edit.
	ErrNoEditSession = errors.New("no record is being edited")
	// ErrUnknownRecord indicates the record is not in the active dataset.
	ErrUnknownRecord = errors.New("record not found in active view")
	// ErrFetchInProgress indicates a fetch for that view is already running.
	ErrFetchInProgress = errors.New("fetch already in progress for this view")
	// ErrCommitInProgress indicates the edit session already has a price
	// update in flight.
	ErrCommitInProgress = errors.New("price update already in progress")
	// ErrStaleResponse indicates a response was discarded because the state
	// it was requested under is no longer current.
	ErrStaleResponse = errors.New("stale response discarded")
)
