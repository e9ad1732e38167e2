package datastore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_GetSet(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(newTestDB(t))

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))

	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestKVStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "commitsentry.db")

	db, err := NewDB(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, NewKVStore(db).Set(ctx, NotifiedCommitsKey, `["abc123"]`))
	require.NoError(t, db.Close())

	db, err = NewDB(path, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	ledger, err := LoadNotifiedLedger(ctx, NewKVStore(db), 0, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, ledger.IsNotified("abc123"))
}
