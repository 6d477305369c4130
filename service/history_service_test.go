package service

import (
	"testing"
	"time"

	"aurabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *historyService {
	t.Helper()
	svc, err := NewHistoryService(newTestStore(t))
	require.NoError(t, err)
	return svc.(*historyService)
}

func atDate(date string) func() time.Time {
	return func() time.Time {
		parsed, err := time.Parse("2006-01-02 15:04:05", date+" 09:29:00")
		if err != nil {
			panic(err)
		}
		return parsed
	}
}

func TestHistoryService_EnsureToday_Idempotent(t *testing.T) {
	history := newTestHistory(t)
	history.now = atDate("2024-01-01")

	require.NoError(t, history.EnsureToday())
	require.Len(t, history.entries, 1)

	require.NoError(t, history.EnsureToday())
	assert.Len(t, history.entries, 1)
	assert.Empty(t, history.entries["2024-01-01"].Aura)
}

func TestHistoryService_TakeSnapshot_ReplacesSameDay(t *testing.T) {
	history := newTestHistory(t)
	history.now = atDate("2024-01-01")

	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 1}))
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 2, "B": 3}))

	require.Len(t, history.entries, 1)
	assert.Equal(t, map[string]int64{"A": 2, "B": 3}, history.entries["2024-01-01"].Aura)
}

func TestHistoryService_TakeSnapshot_CopiesBalances(t *testing.T) {
	history := newTestHistory(t)
	history.now = atDate("2024-01-01")

	balances := map[string]int64{"A": 5}
	require.NoError(t, history.TakeSnapshot(balances))

	// Mutating the caller's map must not reach the stored snapshot
	balances["A"] = 999
	assert.Equal(t, int64(5), history.entries["2024-01-01"].Aura["A"])
}

func TestHistoryService_ComputeDelta_InsufficientData(t *testing.T) {
	history := newTestHistory(t)

	_, err := history.ComputeDelta()
	assert.ErrorIs(t, err, ErrInsufficientData)

	history.now = atDate("2024-01-01")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 5}))

	_, err = history.ComputeDelta()
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestHistoryService_ComputeDelta_RanksAndDiffs(t *testing.T) {
	history := newTestHistory(t)

	history.now = atDate("2024-01-01")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 5, "B": 10}))

	history.now = atDate("2024-01-02")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 12, "B": 8}))

	delta, err := history.ComputeDelta()
	require.NoError(t, err)

	assert.Equal(t, "2024-01-02", delta.Date)
	require.Len(t, delta.Entries, 2)

	// A climbed from rank 2 to rank 1, B fell from 1 to 2
	assert.Equal(t, models.RankChangeEntry{
		UserID: "A", Rank: 1, Score: 12, Diff: 7, Change: models.RankUp,
	}, delta.Entries[0])
	assert.Equal(t, models.RankChangeEntry{
		UserID: "B", Rank: 2, Score: 8, Diff: -2, Change: models.RankDown,
	}, delta.Entries[1])
}

func TestHistoryService_ComputeDelta_NewAndUnchanged(t *testing.T) {
	history := newTestHistory(t)

	history.now = atDate("2024-01-01")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 5}))

	history.now = atDate("2024-01-02")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 5, "B": 3}))

	delta, err := history.ComputeDelta()
	require.NoError(t, err)
	require.Len(t, delta.Entries, 2)

	assert.Equal(t, models.RankUnchanged, delta.Entries[0].Change)
	assert.Equal(t, int64(0), delta.Entries[0].Diff)

	// An unranked user yesterday shows up as new, diffed against zero
	assert.Equal(t, "B", delta.Entries[1].UserID)
	assert.Equal(t, models.RankNew, delta.Entries[1].Change)
	assert.Equal(t, int64(3), delta.Entries[1].Diff)
}

func TestHistoryService_ComputeDelta_OnlyLastTwoDaysMatter(t *testing.T) {
	history := newTestHistory(t)

	history.now = atDate("2023-12-25")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"C": 100}))

	history.now = atDate("2024-01-01")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 5, "B": 10}))

	history.now = atDate("2024-01-02")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 12, "B": 8}))

	delta, err := history.ComputeDelta()
	require.NoError(t, err)

	require.Len(t, delta.Entries, 2)
	assert.Equal(t, "A", delta.Entries[0].UserID)
	assert.Equal(t, int64(7), delta.Entries[0].Diff)
	assert.Equal(t, "B", delta.Entries[1].UserID)
	assert.Equal(t, int64(-2), delta.Entries[1].Diff)
}

func TestHistoryService_Persistence_SurvivesReload(t *testing.T) {
	store := newTestStore(t)

	svc, err := NewHistoryService(store)
	require.NoError(t, err)
	history := svc.(*historyService)

	history.now = atDate("2024-01-01")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 5}))
	history.now = atDate("2024-01-02")
	require.NoError(t, history.TakeSnapshot(map[string]int64{"A": 9}))

	reloaded, err := NewHistoryService(store)
	require.NoError(t, err)

	delta, err := reloaded.ComputeDelta()
	require.NoError(t, err)
	require.Len(t, delta.Entries, 1)
	assert.Equal(t, int64(4), delta.Entries[0].Diff)
}
