package datastore

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNotifiedLedger_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ledger, err := LoadNotifiedLedger(ctx, store, DefaultLedgerCapacity, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, ledger.Add(ctx, "abc123"))
	require.NoError(t, ledger.Add(ctx, "abc123"))

	assert.Equal(t, 1, ledger.Size())
	assert.Equal(t, 1, store.writes)
	assert.JSONEq(t, `["abc123"]`, store.data[NotifiedCommitsKey])
}

func TestNotifiedLedger_TrimsToMostRecent(t *testing.T) {
	ctx := context.Background()
	ledger, err := LoadNotifiedLedger(ctx, newMemoryStore(), DefaultLedgerCapacity, zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 1500; i++ {
		require.NoError(t, ledger.Add(ctx, fmt.Sprintf("c%04d", i)))
	}

	ids := ledger.IDs()
	require.Len(t, ids, 1000)
	assert.Equal(t, "c0500", ids[0])
	assert.Equal(t, "c1499", ids[999])
	assert.False(t, ledger.IsNotified("c0499"))
	assert.True(t, ledger.IsNotified("c0500"))
}

func TestNotifiedLedger_LoadTrimsOversizedEntry(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.data[NotifiedCommitsKey] = `["a","b","b","c","d"]`

	ledger, err := LoadNotifiedLedger(ctx, store, 3, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, ledger.IDs())
	assert.False(t, ledger.IsNotified("a"))
}

func TestNotifiedLedger_CorruptEntryStartsEmpty(t *testing.T) {
	store := newMemoryStore()
	store.data[NotifiedCommitsKey] = `{not json`

	ledger, err := LoadNotifiedLedger(context.Background(), store, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, ledger.Size())
}

func TestNotifiedLedger_FailedWriteLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ledger, err := LoadNotifiedLedger(ctx, store, 0, zerolog.Nop())
	require.NoError(t, err)

	store.failSet = true
	assert.Error(t, ledger.Add(ctx, "abc123"))
	assert.False(t, ledger.IsNotified("abc123"))
}

func TestNotifiedLedger_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(newTestDB(t))

	ledger, err := LoadNotifiedLedger(ctx, kv, 0, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, ledger.Add(ctx, "c1"))
	require.NoError(t, ledger.Add(ctx, "c2"))

	reloaded, err := LoadNotifiedLedger(ctx, kv, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, reloaded.IDs())
}

func TestNotifiedLedger_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		capacity := rapid.IntRange(1, 20).Draw(t, "capacity")
		ids := rapid.SliceOf(rapid.StringMatching(`[a-f0-9]{1,3}`)).Draw(t, "ids")

		ledger, err := LoadNotifiedLedger(ctx, newMemoryStore(), capacity, zerolog.Nop())
		if err != nil {
			t.Fatal(err)
		}

		var expected []string
		for _, id := range ids {
			if err := ledger.Add(ctx, id); err != nil {
				t.Fatal(err)
			}
			if !contains(expected, id) {
				expected = append(expected, id)
				if len(expected) > capacity {
					expected = expected[1:]
				}
			}

			if !ledger.IsNotified(id) {
				t.Fatalf("%q missing right after Add", id)
			}
			if ledger.Size() > capacity {
				t.Fatalf("size %d exceeds capacity %d", ledger.Size(), capacity)
			}
		}

		got := ledger.IDs()
		if len(got) != len(expected) {
			t.Fatalf("got %v, want %v", got, expected)
		}
		for i := range got {
			if got[i] != expected[i] {
				t.Fatalf("got %v, want %v", got, expected)
			}
		}
	})
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
