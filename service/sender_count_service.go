package service

import (
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"aurabot/models"
	"aurabot/storage"
)

// slot name for the per-sender counters
const auraCountSlot = "auraCount"

// senderCountService implements the SenderCountService interface
type senderCountService struct {
	mu     sync.Mutex
	counts map[string]*models.SenderCounts
	store  *storage.Store
}

// NewSenderCountService creates a sender-count service, loading counters
// from the auraCount slot
func NewSenderCountService(store *storage.Store) (SenderCountService, error) {
	counts := make(map[string]*models.SenderCounts)
	if err := store.Load(auraCountSlot, &counts); err != nil {
		return nil, fmt.Errorf("failed to load auraCount slot: %w", err)
	}
	log.Infof("Aura count data loaded (%d senders)", len(counts))

	return &senderCountService{
		counts: counts,
		store:  store,
	}, nil
}

func (s *senderCountService) Adjust(senderID string, field models.SenderField, delta int64) (int64, error) {
	if field != models.SenderFieldPos && field != models.SenderFieldNeg {
		return 0, fmt.Errorf("unknown sender count field %q", field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts, ok := s.counts[senderID]
	if !ok {
		// Lazy init on first adjustment
		counts = &models.SenderCounts{}
		s.counts[senderID] = counts
	}

	// Clamp at zero, never store a negative count
	newValue := counts.Get(field) + delta
	if newValue < 0 {
		newValue = 0
	}
	counts.Set(field, newValue)

	if err := s.store.Save(auraCountSlot, s.counts); err != nil {
		log.Errorf("Failed to save auraCount slot: %v", err)
		return newValue, fmt.Errorf("failed to save auraCount slot: %w", err)
	}

	log.Infof("Adjusted %s for %s by %d -> %d", field, senderID, delta, newValue)
	return newValue, nil
}

func (s *senderCountService) Top(field models.SenderField) []models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.LeaderboardEntry, 0, len(s.counts))
	for id, counts := range s.counts {
		if counts.Get(field) > 0 {
			entries = append(entries, models.LeaderboardEntry{UserID: id, Score: counts.Get(field)})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID < entries[j].UserID
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
