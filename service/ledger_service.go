package service

import (
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"aurabot/models"
	"aurabot/storage"
)

// slot name for the balance mapping
const auraSlot = "aura"

// ledgerService implements the LedgerService interface
type ledgerService struct {
	mu       sync.Mutex
	balances map[string]int64
	store    *storage.Store
}

// NewLedgerService creates a ledger service, loading balances from the
// aura slot. A missing or corrupt slot starts empty.
func NewLedgerService(store *storage.Store) (LedgerService, error) {
	balances := make(map[string]int64)
	if err := store.Load(auraSlot, &balances); err != nil {
		return nil, fmt.Errorf("failed to load aura slot: %w", err)
	}
	log.Infof("Aura data loaded (%d users)", len(balances))

	return &ledgerService{
		balances: balances,
		store:    store,
	}, nil
}

func (s *ledgerService) GetBalance(userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID]
}

func (s *ledgerService) SetBalance(userID string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[userID] = value
	if err := s.persist(); err != nil {
		return err
	}
	log.Infof("Set aura for user %s: %d", userID, value)
	return nil
}

func (s *ledgerService) AdjustBalance(userID string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newBalance := s.balances[userID] + delta
	s.balances[userID] = newBalance
	if err := s.persist(); err != nil {
		return newBalance, err
	}
	log.Infof("Updated aura for user %s: %d", userID, newBalance)
	return newBalance, nil
}

func (s *ledgerService) Transfer(fromID, toID string, amount int64) (*models.TransferResult, error) {
	// Validate inputs
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSelfTransfer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Unlike AdjustBalance, spending paths require sufficient funds
	if s.balances[fromID] < amount {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, s.balances[fromID], amount)
	}

	// Debit and credit as one unit under the lock, then persist once
	s.balances[fromID] -= amount
	s.balances[toID] += amount
	if err := s.persist(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"from":   fromID,
		"to":     toID,
		"amount": amount,
	}).Info("Aura transferred")

	return &models.TransferResult{
		Amount:      amount,
		FromBalance: s.balances[fromID],
		ToBalance:   s.balances[toID],
	}, nil
}

func (s *ledgerService) Leaderboard() []models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rankBalances(s.balances)
}

func (s *ledgerService) Balances() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]int64, len(s.balances))
	for id, balance := range s.balances {
		copied[id] = balance
	}
	return copied
}

// persist saves the full mapping. Callers must hold s.mu so a read
// immediately after any mutation observes the persisted value.
func (s *ledgerService) persist() error {
	if err := s.store.Save(auraSlot, s.balances); err != nil {
		log.Errorf("Failed to save aura slot: %v", err)
		return fmt.Errorf("failed to save aura slot: %w", err)
	}
	return nil
}

// rankBalances sorts a balance mapping into descending order. Keys are
// sorted first so equal scores tie-break deterministically by user ID.
func rankBalances(balances map[string]int64) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(balances))
	for id, score := range balances {
		entries = append(entries, models.LeaderboardEntry{UserID: id, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID < entries[j].UserID
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
