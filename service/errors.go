package service

import "errors"

// Sentinel errors for user-visible conditions. Handlers branch on these
// with errors.Is to pick the right chat reply; none of them indicate a
// mutation took place.
var (
	// ErrInvalidAmount is returned for non-positive or unparsable amounts
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrInsufficientFunds is returned when a transfer or stake exceeds
	// the user's balance
	ErrInsufficientFunds = errors.New("insufficient aura")

	// ErrSelfTransfer is returned when a user tries to give aura to
	// themselves
	ErrSelfTransfer = errors.New("cannot transfer aura to yourself")

	// ErrInsufficientData is returned by ComputeDelta when fewer than two
	// snapshots exist. Recoverable, surfaced to the user as-is.
	ErrInsufficientData = errors.New("not enough history for a daily ranking")
)
