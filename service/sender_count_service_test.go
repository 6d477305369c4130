package service

import (
	"testing"

	"aurabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSenderCountService_Adjust_Increments(t *testing.T) {
	counts, err := NewSenderCountService(newTestStore(t))
	require.NoError(t, err)

	value, err := counts.Adjust("sender", models.SenderFieldPos, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)

	value, err = counts.Adjust("sender", models.SenderFieldPos, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), value)
}

func TestSenderCountService_Adjust_FieldsAreIndependent(t *testing.T) {
	counts, err := NewSenderCountService(newTestStore(t))
	require.NoError(t, err)

	_, err = counts.Adjust("sender", models.SenderFieldPos, 3)
	require.NoError(t, err)

	value, err := counts.Adjust("sender", models.SenderFieldNeg, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), value)

	top := counts.Top(models.SenderFieldPos)
	require.Len(t, top, 1)
	assert.Equal(t, int64(3), top[0].Score)
}

func TestSenderCountService_Adjust_ClampsAtZero(t *testing.T) {
	counts, err := NewSenderCountService(newTestStore(t))
	require.NoError(t, err)

	// Decrementing a fresh counter must not go negative
	value, err := counts.Adjust("sender", models.SenderFieldNeg, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)

	_, err = counts.Adjust("sender", models.SenderFieldPos, 2)
	require.NoError(t, err)
	value, err = counts.Adjust("sender", models.SenderFieldPos, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

func TestSenderCountService_Adjust_UnknownField(t *testing.T) {
	counts, err := NewSenderCountService(newTestStore(t))
	require.NoError(t, err)

	_, err = counts.Adjust("sender", models.SenderField("BOGUS"), 1)
	assert.Error(t, err)
}

func TestSenderCountService_Top_FiltersAndOrders(t *testing.T) {
	counts, err := NewSenderCountService(newTestStore(t))
	require.NoError(t, err)

	_, err = counts.Adjust("small", models.SenderFieldPos, 1)
	require.NoError(t, err)
	_, err = counts.Adjust("big", models.SenderFieldPos, 9)
	require.NoError(t, err)
	_, err = counts.Adjust("zeroed", models.SenderFieldPos, -1)
	require.NoError(t, err)

	top := counts.Top(models.SenderFieldPos)
	require.Len(t, top, 2)
	assert.Equal(t, "big", top[0].UserID)
	assert.Equal(t, "small", top[1].UserID)
}

func TestSenderCountService_Persistence_SurvivesReload(t *testing.T) {
	store := newTestStore(t)

	counts, err := NewSenderCountService(store)
	require.NoError(t, err)
	_, err = counts.Adjust("sender", models.SenderFieldNeg, 4)
	require.NoError(t, err)

	reloaded, err := NewSenderCountService(store)
	require.NoError(t, err)

	top := reloaded.Top(models.SenderFieldNeg)
	require.Len(t, top, 1)
	assert.Equal(t, int64(4), top[0].Score)
}
