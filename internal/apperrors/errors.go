package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrCoinNotFound indicates that a coin with the given symbol or ID does not exist.
	ErrCoinNotFound = errors.New("coin not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrGoalNotFound indicates that a goal with the given ID does not exist.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrSettingNotFound indicates that a system setting key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidRange indicates an unknown chart time-range selector.
	ErrInvalidRange = errors.New("invalid chart range")
)

// Oracle errors represent degraded states of the external price oracle.
// Computation continues with the last cached prices when these occur.
var (
	// ErrOracleRateLimited indicates the price oracle answered with a
	// rate-limit signal; callers retain the last cached price.
	ErrOracleRateLimited = errors.New("price oracle rate limited")

	// ErrOracleUnavailable indicates the price oracle could not be reached.
	ErrOracleUnavailable = errors.New("price oracle unavailable")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToRetrieveTransaction = errors.New("failed to retrieve transaction")
	ErrFailedToImportTransactions  = errors.New("failed to import transactions")
	ErrFailedToRefreshPrices       = errors.New("failed to refresh prices")
	ErrFailedToGetChart            = errors.New("failed to get price chart")
)
