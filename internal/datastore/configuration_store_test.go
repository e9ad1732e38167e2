package datastore

import (
	"context"
	"testing"

	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationStore_LoadOrSeed(t *testing.T) {
	ctx := context.Background()
	store := NewConfigurationStore(NewKVStore(newTestDB(t)))

	seed := models.DefaultMonitorConfiguration()
	seed.MonitoredFolders = []string{"ui-kit"}

	got, err := store.LoadOrSeed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	changed := got
	changed.CheckIntervalMinutes = 30
	require.NoError(t, store.Save(ctx, changed))

	// a different seed no longer wins once something is stored
	got, err = store.LoadOrSeed(ctx, models.DefaultMonitorConfiguration())
	require.NoError(t, err)
	assert.Equal(t, 30, got.CheckIntervalMinutes)
	assert.Equal(t, []string{"ui-kit"}, got.MonitoredFolders)
}

func TestConfigurationStore_MissingFieldsKeepDefaults(t *testing.T) {
	ctx := context.Background()
	mem := newMemoryStore()
	mem.data[MonitorConfigurationKey] = `{"enabled":true,"monitored_folders":["forms"]}`

	cfg, ok, err := NewConfigurationStore(mem).Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.SoundEnabled)
	assert.Equal(t, models.DefaultSound, cfg.SelectedSound)
	assert.Equal(t, models.DefaultCheckIntervalMinutes, cfg.CheckIntervalMinutes)
}
