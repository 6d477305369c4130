package models

// Settings is the persisted bot configuration: the channel the daily
// leaderboard posts to and the set of privileged user IDs
type Settings struct {
	ChannelID *int64  `json:"channel_id"`
	OwnerIDs  []int64 `json:"owner_id"`
}
