package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"aurabot/models"
	"aurabot/storage"
)

// slot name for the snapshot history
const historySlot = "auraHistory"

const (
	dateKeyFormat = "2006-01-02"
	captureFormat = "15-04-05"
)

// historyService implements the HistoryService interface. Both scheduled
// workers and commands go through it, so all access is serialized.
type historyService struct {
	mu      sync.Mutex
	entries map[string]models.Snapshot
	store   *storage.Store

	// now is swappable for tests
	now func() time.Time
}

// NewHistoryService creates a history service, loading snapshots from
// the auraHistory slot
func NewHistoryService(store *storage.Store) (HistoryService, error) {
	entries := make(map[string]models.Snapshot)
	if err := store.Load(historySlot, &entries); err != nil {
		return nil, fmt.Errorf("failed to load auraHistory slot: %w", err)
	}
	log.Infof("Aura history loaded (%d days)", len(entries))

	return &historyService{
		entries: entries,
		store:   store,
		now:     time.Now,
	}, nil
}

func (s *historyService) EnsureToday() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().Format(dateKeyFormat)
	if _, ok := s.entries[today]; ok {
		return nil
	}

	s.entries[today] = models.Snapshot{Aura: map[string]int64{}}
	if err := s.persist(); err != nil {
		return err
	}
	log.Warnf("Added %s to history", today)
	return nil
}

func (s *historyService) TakeSnapshot(balances map[string]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]int64, len(balances))
	for id, balance := range balances {
		copied[id] = balance
	}

	now := s.now()
	today := now.Format(dateKeyFormat)
	// Repeated snapshots on the same day replace, not append
	s.entries[today] = models.Snapshot{
		Time: now.Format(captureFormat),
		Aura: copied,
	}

	if err := s.persist(); err != nil {
		return err
	}
	log.Infof("Daily snapshot saved for %s (%d users)", today, len(copied))
	return nil
}

func (s *historyService) ComputeDelta() (*models.DailyDelta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) < 2 {
		return nil, ErrInsufficientData
	}

	// Date keys sort chronologically as strings; only the last two
	// matter, however many days were skipped in between
	dates := make([]string, 0, len(s.entries))
	for date := range s.entries {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	yesterday := s.entries[dates[len(dates)-2]].Aura
	today := s.entries[dates[len(dates)-1]].Aura

	yesterdayRanks := make(map[string]int, len(yesterday))
	for rank, entry := range rankBalances(yesterday) {
		yesterdayRanks[entry.UserID] = rank + 1
	}

	todayRanked := rankBalances(today)
	entries := make([]models.RankChangeEntry, 0, len(todayRanked))
	for i, entry := range todayRanked {
		rank := i + 1
		oldRank, ranked := yesterdayRanks[entry.UserID]

		var change models.RankChange
		switch {
		case !ranked:
			change = models.RankNew
		case oldRank > rank:
			change = models.RankUp
		case oldRank < rank:
			change = models.RankDown
		default:
			change = models.RankUnchanged
		}

		entries = append(entries, models.RankChangeEntry{
			UserID: entry.UserID,
			Rank:   rank,
			Score:  entry.Score,
			Diff:   entry.Score - yesterday[entry.UserID],
			Change: change,
		})
	}

	return &models.DailyDelta{
		Date:    dates[len(dates)-1],
		Entries: entries,
	}, nil
}

// persist saves the full history. Callers must hold s.mu.
func (s *historyService) persist() error {
	if err := s.store.Save(historySlot, s.entries); err != nil {
		log.Errorf("Failed to save auraHistory slot: %v", err)
		return fmt.Errorf("failed to save auraHistory slot: %w", err)
	}
	return nil
}
