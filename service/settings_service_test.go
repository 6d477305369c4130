package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_SeedsOwnersOnFirstRun(t *testing.T) {
	settings, err := NewSettingsService(newTestStore(t), []string{"111", "222"})
	require.NoError(t, err)

	assert.True(t, settings.IsOwner("111"))
	assert.True(t, settings.IsOwner("222"))
	assert.False(t, settings.IsOwner("333"))
}

func TestSettingsService_SeedIgnoresInvalidIDs(t *testing.T) {
	settings, err := NewSettingsService(newTestStore(t), []string{"111", "not-an-id"})
	require.NoError(t, err)

	assert.True(t, settings.IsOwner("111"))
	assert.False(t, settings.IsOwner("not-an-id"))
}

func TestSettingsService_SeedOnlyAppliesWhenEmpty(t *testing.T) {
	store := newTestStore(t)

	settings, err := NewSettingsService(store, []string{"111"})
	require.NoError(t, err)
	require.NoError(t, settings.AddOwner("222"))

	// A restart with a different seed list keeps the persisted set
	reloaded, err := NewSettingsService(store, []string{"999"})
	require.NoError(t, err)
	assert.True(t, reloaded.IsOwner("111"))
	assert.True(t, reloaded.IsOwner("222"))
	assert.False(t, reloaded.IsOwner("999"))
}

func TestSettingsService_IsOwner_NonNumericID(t *testing.T) {
	settings, err := NewSettingsService(newTestStore(t), nil)
	require.NoError(t, err)

	assert.False(t, settings.IsOwner("abc"))
	assert.False(t, settings.IsOwner(""))
}

func TestSettingsService_AddOwner(t *testing.T) {
	store := newTestStore(t)
	settings, err := NewSettingsService(store, nil)
	require.NoError(t, err)

	require.NoError(t, settings.AddOwner("444"))
	require.NoError(t, settings.AddOwner("444"))
	assert.True(t, settings.IsOwner("444"))

	assert.Error(t, settings.AddOwner("not-an-id"))

	reloaded, err := NewSettingsService(store, nil)
	require.NoError(t, err)
	assert.True(t, reloaded.IsOwner("444"))
}

func TestSettingsService_Channel(t *testing.T) {
	store := newTestStore(t)
	settings, err := NewSettingsService(store, nil)
	require.NoError(t, err)

	_, ok := settings.Channel()
	assert.False(t, ok)

	assert.Error(t, settings.SetChannel("not-a-channel"))

	require.NoError(t, settings.SetChannel("987654321"))
	channelID, ok := settings.Channel()
	assert.True(t, ok)
	assert.Equal(t, "987654321", channelID)

	reloaded, err := NewSettingsService(store, nil)
	require.NoError(t, err)
	channelID, ok = reloaded.Channel()
	assert.True(t, ok)
	assert.Equal(t, "987654321", channelID)
}
