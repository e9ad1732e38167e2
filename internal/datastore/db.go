package datastore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection shared by the key-value store and the cycle history.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewDB opens (creating if needed) the database at dataSourceName and ensures the schema.
func NewDB(dataSourceName string, logger zerolog.Logger) (*DB, error) {
	logger = logger.With().Str("component", "DB").Logger()
	logger.Debug().Str("db_path", dataSourceName).Msg("Opening database")

	if dbDir := filepath.Dir(dataSourceName); dbDir != "" {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// a single connection serialises writers; sqlite would otherwise report SQLITE_BUSY
	dbInstance.SetMaxOpenConns(1)

	db := &DB{
		db:     dbInstance,
		logger: logger,
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info().Str("path", dataSourceName).Msg("Database initialized and schema verified")
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// InitSchema creates the kv_store and check_cycles tables if they don't exist.
func (d *DB) InitSchema() error {
	statements := []string{
		`PRAGMA busy_timeout = 5000`,
		`CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS check_cycles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle_id TEXT UNIQUE NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER,
			status TEXT NOT NULL,
			fetched INTEGER DEFAULT 0,
			candidates INTEGER DEFAULT 0,
			deferred INTEGER DEFAULT 0,
			notified INTEGER DEFAULT 0,
			error_message TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_check_cycles_started_at ON check_cycles(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := d.db.Exec(stmt); err != nil {
			d.logger.Error().Err(err).Msg("Failed to initialize schema")
			return err
		}
	}
	return nil
}
