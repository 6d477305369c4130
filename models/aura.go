package models

// LeaderboardEntry is a single row of a ranked listing
type LeaderboardEntry struct {
	UserID string
	Score  int64
}

// TransferResult represents the outcome of a successful aura transfer
type TransferResult struct {
	Amount      int64
	FromBalance int64 // sender balance after the transfer
	ToBalance   int64 // recipient balance after the transfer
}
