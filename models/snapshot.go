package models

// Snapshot is a point-in-time copy of all balances for one calendar day
type Snapshot struct {
	// Time is the wall-clock capture time formatted as HH-MM-SS
	Time string `json:"time"`

	// Aura maps user ID to balance at capture time
	Aura map[string]int64 `json:"aura"`
}

// RankChange classifies a user's leaderboard movement between two snapshots
type RankChange string

const (
	RankNew       RankChange = "new"
	RankUp        RankChange = "up"
	RankDown      RankChange = "down"
	RankUnchanged RankChange = "unchanged"
)

// RankChangeEntry is one row of the day-over-day ranking
type RankChangeEntry struct {
	UserID string
	Rank   int // today's 1-based rank
	Score  int64
	Diff   int64 // today's score minus yesterday's (0 if absent yesterday)
	Change RankChange
}

// DailyDelta is the day-over-day ranking computed from the two most
// recent snapshots
type DailyDelta struct {
	// Date is the newer snapshot's date key (YYYY-MM-DD)
	Date    string
	Entries []RankChangeEntry
}
