package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
)

// KVStore is a durable string store on top of the kv_store table.
type KVStore struct {
	db  *DB
	now func() time.Time
}

// NewKVStore creates a KVStore backed by db.
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db, now: time.Now}
}

// Get returns the value stored under key and whether it exists.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %q: %v", errorwrapper.ErrStorage, key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: set %q: %v", errorwrapper.ErrStorage, key, err)
	}
	return nil
}
