package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSymbolNotFound indicates that a watchlist symbol lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPriceNotFound indicates no price record for a specific symbol and date combination.
	ErrPriceNotFound = errors.New("price not found")

	// ErrSnapshotNotFound indicates that no snapshots exist for the given symbol.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrExchangeRateNotFound indicates no record for a specific currency pair and date
	// combination. The valuation engine never falls back to a nearby date; a missing
	// rate aborts the affected symbol's recomputation.
	ErrExchangeRateNotFound = errors.New("exchange rate for currency/date not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientShares indicates that a sell closes more shares than the
	// ledger holds open. Raised only in strict oversell mode; lenient mode
	// truncates the close to the available quantity instead.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInvalidLot indicates that a lot open was attempted with a non-positive
	// quantity or cost per share.
	ErrInvalidLot = errors.New("lot quantity and cost per share must be positive")

	// ErrUnknownLotPolicy indicates an unrecognized lot matching policy value.
	ErrUnknownLotPolicy = errors.New("unknown lot matching policy")

	// ErrMissingLotIDs indicates a SPEC_ID sell that did not identify any lots.
	ErrMissingLotIDs = errors.New("specific-identification sale requires lot IDs")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Watchlist operation errors
	ErrFailedToRetrieveWatchlist = errors.New("failed to retrieve watchlist")
	ErrFailedToAddSymbol         = errors.New("failed to add watchlist symbol")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")

	// Snapshot operation errors
	ErrFailedToRetrieveSnapshots = errors.New("failed to retrieve snapshots")
	ErrFailedToRecompute         = errors.New("failed to recompute snapshots")

	// Price and FX operation errors
	ErrFailedToRetrievePrices       = errors.New("failed to retrieve prices")
	ErrFailedToRetrieveExchangeRate = errors.New("failed to retrieve exchange rate")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a snapshot exists for a symbol with no price history).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
