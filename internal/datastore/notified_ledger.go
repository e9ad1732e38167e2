package datastore

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/rs/zerolog"
)

const (
	// NotifiedCommitsKey is the KV key the ledger persists under.
	NotifiedCommitsKey = "notified-commits"
	// DefaultLedgerCapacity bounds how many ids the ledger remembers.
	DefaultLedgerCapacity = 1000
)

// NotifiedLedger remembers the most recent commit ids that produced a notification.
// Ids are kept in insertion order; once over capacity the oldest are dropped.
type NotifiedLedger struct {
	mu       sync.Mutex
	store    models.KeyValueStore
	logger   zerolog.Logger
	capacity int
	ids      []string
	index    map[string]struct{}
}

// LoadNotifiedLedger reads the persisted ledger. A corrupt entry is logged and
// replaced by an empty ledger; storage failures are returned.
func LoadNotifiedLedger(ctx context.Context, store models.KeyValueStore, capacity int, logger zerolog.Logger) (*NotifiedLedger, error) {
	if capacity <= 0 {
		capacity = DefaultLedgerCapacity
	}
	l := &NotifiedLedger{
		store:    store,
		logger:   logger.With().Str("component", "NotifiedLedger").Logger(),
		capacity: capacity,
		index:    make(map[string]struct{}),
	}

	raw, ok, err := store.Get(ctx, NotifiedCommitsKey)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to load notified ledger")
	}
	if !ok {
		return l, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		l.logger.Warn().Err(err).Msg("Discarding unreadable notified ledger")
		return l, nil
	}
	for _, id := range ids {
		if _, seen := l.index[id]; seen || id == "" {
			continue
		}
		l.ids = append(l.ids, id)
		l.index[id] = struct{}{}
	}
	l.trimLocked()
	return l, nil
}

// IsNotified reports whether id is in the ledger.
func (l *NotifiedLedger) IsNotified(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.index[id]
	return ok
}

// Add records id and persists the ledger before returning. Adding an id that is
// already present changes nothing and does not write.
func (l *NotifiedLedger) Add(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[id]; ok {
		return nil
	}

	next := append(slices.Clone(l.ids), id)
	if over := len(next) - l.capacity; over > 0 {
		next = next[over:]
	}

	data, err := json.Marshal(next)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to encode notified ledger")
	}
	if err := l.store.Set(ctx, NotifiedCommitsKey, string(data)); err != nil {
		return errorwrapper.WrapError(err, "failed to persist notified ledger")
	}

	l.ids = next
	l.index = make(map[string]struct{}, len(next))
	for _, v := range next {
		l.index[v] = struct{}{}
	}
	return nil
}

// Size returns the number of remembered ids.
func (l *NotifiedLedger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}

// IDs returns the remembered ids, oldest first.
func (l *NotifiedLedger) IDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.ids)
}

func (l *NotifiedLedger) trimLocked() {
	over := len(l.ids) - l.capacity
	if over <= 0 {
		return
	}
	for _, id := range l.ids[:over] {
		delete(l.index, id)
	}
	l.ids = slices.Clone(l.ids[over:])
}
