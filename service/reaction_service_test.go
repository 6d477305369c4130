package service

import (
	"testing"

	"aurabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReactionService(t *testing.T) (ReactionService, LedgerService, SenderCountService) {
	t.Helper()
	store := newTestStore(t)
	ledger, err := NewLedgerService(store)
	require.NoError(t, err)
	counts, err := NewSenderCountService(store)
	require.NoError(t, err)
	return NewReactionService(ledger, counts), ledger, counts
}

func TestReactionService_Record_Up(t *testing.T) {
	reactions, ledger, counts := newTestReactionService(t)

	require.NoError(t, reactions.Record("sender", "target", models.ReactionUp))

	assert.Equal(t, int64(1), ledger.GetBalance("target"))
	assert.Equal(t, int64(0), ledger.GetBalance("sender"))

	top := counts.Top(models.SenderFieldPos)
	require.Len(t, top, 1)
	assert.Equal(t, "sender", top[0].UserID)
	assert.Equal(t, int64(1), top[0].Score)
}

func TestReactionService_Record_Down(t *testing.T) {
	reactions, ledger, counts := newTestReactionService(t)

	require.NoError(t, reactions.Record("sender", "target", models.ReactionDown))

	assert.Equal(t, int64(-1), ledger.GetBalance("target"))

	top := counts.Top(models.SenderFieldNeg)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].Score)
}

func TestReactionService_Undo_ReversesRecord(t *testing.T) {
	reactions, ledger, counts := newTestReactionService(t)

	require.NoError(t, reactions.Record("sender", "target", models.ReactionUp))
	require.NoError(t, reactions.Undo("sender", "target", models.ReactionUp))

	assert.Equal(t, int64(0), ledger.GetBalance("target"))
	assert.Empty(t, counts.Top(models.SenderFieldPos))
}

func TestReactionService_Undo_WithoutRecord(t *testing.T) {
	reactions, ledger, counts := newTestReactionService(t)

	// The balance goes negative but the sender counter clamps at zero
	require.NoError(t, reactions.Undo("sender", "target", models.ReactionUp))

	assert.Equal(t, int64(-1), ledger.GetBalance("target"))
	assert.Empty(t, counts.Top(models.SenderFieldPos))
}

func TestReactionService_UnknownKind(t *testing.T) {
	reactions, _, _ := newTestReactionService(t)

	assert.Error(t, reactions.Record("sender", "target", models.ReactionKind("shrug")))
	assert.Error(t, reactions.Undo("sender", "target", models.ReactionKind("shrug")))
}
