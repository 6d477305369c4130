package service

import (
	"aurabot/models"
)

// LedgerService defines the interface for aura balance operations.
// It is the sole writer of the balance slot; all mutations persist the
// full mapping synchronously before returning.
type LedgerService interface {
	// GetBalance returns the current balance, 0 for unknown users
	GetBalance(userID string) int64

	// SetBalance overwrites a user's balance to an explicit value
	SetBalance(userID string, value int64) error

	// AdjustBalance applies a relative change and returns the new balance.
	// Balances may go negative; this path has no floor.
	AdjustBalance(userID string, delta int64) (int64, error)

	// Transfer moves amount from one user to another as a single unit,
	// or fails without mutating anything
	Transfer(fromID, toID string, amount int64) (*models.TransferResult, error)

	// Leaderboard returns all users sorted by balance descending
	Leaderboard() []models.LeaderboardEntry

	// Balances returns a copy of the full balance mapping
	Balances() map[string]int64
}

// SenderCountService tracks how much aura each user has given out
type SenderCountService interface {
	// Adjust changes a sender's POS or NEG counter, clamping the result
	// at zero, and returns the new value
	Adjust(senderID string, field models.SenderField, delta int64) (int64, error)

	// Top returns senders with a nonzero counter for the field, sorted
	// descending. Zero-count entries are excluded from the listing but
	// stay in storage.
	Top(field models.SenderField) []models.LeaderboardEntry
}

// HistoryService owns the date-keyed snapshot record used for
// day-over-day rankings
type HistoryService interface {
	// EnsureToday inserts an empty placeholder for today's date if none
	// exists. Idempotent.
	EnsureToday() error

	// TakeSnapshot captures the given balances into today's entry,
	// replacing any earlier snapshot for the same day
	TakeSnapshot(balances map[string]int64) error

	// ComputeDelta ranks the two most recent snapshots against each
	// other. Returns ErrInsufficientData with fewer than two entries.
	ComputeDelta() (*models.DailyDelta, error)
}

// LockRegistry tracks which users hold the exclusive wagering lock
type LockRegistry interface {
	// IsBusy reports whether the user currently holds a lock
	IsBusy(userID string) bool

	// TryAcquire atomically checks and takes the lock. Exactly one of
	// any concurrent attempts for the same user succeeds.
	TryAcquire(userID string, holderName string) bool

	// Release clears the lock. Callers must release on every exit path.
	Release(userID string, holderName string)
}

// ReactionService applies an aura reaction to both the target's balance
// and the sender's given-counters
type ReactionService interface {
	// Record applies a reaction add
	Record(senderID, targetID string, kind models.ReactionKind) error

	// Undo reverses a previously recorded reaction
	Undo(senderID, targetID string, kind models.ReactionKind) error
}

// SettingsService owns the persisted owner set and leaderboard channel
type SettingsService interface {
	// IsOwner reports whether the user may run privileged commands
	IsOwner(userID string) bool

	// AddOwner adds a user to the persisted owner set
	AddOwner(userID string) error

	// SetChannel records the channel the daily leaderboard posts to
	SetChannel(channelID string) error

	// Channel returns the configured channel ID, if any
	Channel() (string, bool)
}
