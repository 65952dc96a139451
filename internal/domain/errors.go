package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Shop errors
	ErrItemNotFound      = errors.New("cosmetic item not found in catalog")
	ErrNotOwned          = errors.New("cosmetic item not owned")
	ErrNotEligible       = errors.New("purchase blocked by eligibility gate")
	ErrInsufficientCoins = errors.New("insufficient coin balance")

	// Coin ledger errors
	ErrNonPositiveAmount = errors.New("coin amount must be positive")

	// Challenge errors
	ErrPremiumRequired = errors.New("weekly challenges require premium")

	// History errors
	ErrFutureDate = errors.New("cannot record steps for a future date")
)
