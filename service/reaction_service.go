package service

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"aurabot/models"
)

// reactionService implements the ReactionService interface by composing
// the ledger and sender-count stores
type reactionService struct {
	ledger LedgerService
	counts SenderCountService
}

// NewReactionService creates a reaction service
func NewReactionService(ledger LedgerService, counts SenderCountService) ReactionService {
	return &reactionService{
		ledger: ledger,
		counts: counts,
	}
}

func (s *reactionService) Record(senderID, targetID string, kind models.ReactionKind) error {
	delta, field, err := reactionEffect(kind)
	if err != nil {
		return err
	}

	if _, err := s.ledger.AdjustBalance(targetID, delta); err != nil {
		return fmt.Errorf("failed to adjust target balance: %w", err)
	}
	if _, err := s.counts.Adjust(senderID, field, 1); err != nil {
		return fmt.Errorf("failed to adjust sender count: %w", err)
	}

	log.WithFields(log.Fields{
		"sender": senderID,
		"target": targetID,
		"kind":   kind,
	}).Info("Reaction recorded")
	return nil
}

func (s *reactionService) Undo(senderID, targetID string, kind models.ReactionKind) error {
	delta, field, err := reactionEffect(kind)
	if err != nil {
		return err
	}

	if _, err := s.ledger.AdjustBalance(targetID, -delta); err != nil {
		return fmt.Errorf("failed to adjust target balance: %w", err)
	}
	// Sender counter clamps at zero on the way down
	if _, err := s.counts.Adjust(senderID, field, -1); err != nil {
		return fmt.Errorf("failed to adjust sender count: %w", err)
	}

	log.WithFields(log.Fields{
		"sender": senderID,
		"target": targetID,
		"kind":   kind,
	}).Info("Reaction undone")
	return nil
}

func reactionEffect(kind models.ReactionKind) (int64, models.SenderField, error) {
	switch kind {
	case models.ReactionUp:
		return 1, models.SenderFieldPos, nil
	case models.ReactionDown:
		return -1, models.SenderFieldNeg, nil
	default:
		return 0, "", fmt.Errorf("unknown reaction kind %q", kind)
	}
}
