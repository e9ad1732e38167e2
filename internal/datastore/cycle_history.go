package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aleister1102/commitsentry/internal/models"
)

// CycleHistory records every check cycle in the check_cycles table.
type CycleHistory struct {
	db *DB
}

func NewCycleHistory(db *DB) *CycleHistory {
	return &CycleHistory{db: db}
}

// RecordCycleStart inserts a RUNNING row for cycleID.
func (h *CycleHistory) RecordCycleStart(ctx context.Context, cycleID string, startedAt time.Time) error {
	_, err := h.db.db.ExecContext(ctx,
		`INSERT INTO check_cycles (cycle_id, started_at, status) VALUES (?, ?, ?)`,
		cycleID, startedAt.UnixMilli(), string(models.CycleStatusRunning))
	if err != nil {
		return fmt.Errorf("failed to insert cycle start record: %w", err)
	}
	return nil
}

// UpdateCycleCompletion stores the terminal status and counters of cycleID.
func (h *CycleHistory) UpdateCycleCompletion(ctx context.Context, cycleID string, endedAt time.Time, status models.CycleStatus, report models.CycleReport, errMsg string) error {
	res, err := h.db.db.ExecContext(ctx,
		`UPDATE check_cycles SET ended_at = ?, status = ?, fetched = ?, candidates = ?, deferred = ?, notified = ?, error_message = ?
		 WHERE cycle_id = ?`,
		endedAt.UnixMilli(), string(status), report.Fetched, report.Candidates, report.Deferred, report.Notified,
		sql.NullString{String: errMsg, Valid: errMsg != ""}, cycleID)
	if err != nil {
		return fmt.Errorf("failed to update cycle completion for %s: %w", cycleID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no cycle record for %s", cycleID)
	}
	return nil
}

// RecentCycles returns up to limit cycles, newest first.
func (h *CycleHistory) RecentCycles(ctx context.Context, limit int) ([]models.CycleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.db.QueryContext(ctx,
		`SELECT cycle_id, started_at, ended_at, status, fetched, candidates, deferred, notified, error_message
		 FROM check_cycles ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycle history: %w", err)
	}
	defer rows.Close()

	var records []models.CycleRecord
	for rows.Next() {
		rec, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LastCycle returns the most recent cycle, or ok=false when none was recorded.
func (h *CycleHistory) LastCycle(ctx context.Context) (models.CycleRecord, bool, error) {
	row := h.db.db.QueryRowContext(ctx,
		`SELECT cycle_id, started_at, ended_at, status, fetched, candidates, deferred, notified, error_message
		 FROM check_cycles ORDER BY started_at DESC, id DESC LIMIT 1`)
	rec, err := scanCycle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CycleRecord{}, false, nil
	}
	if err != nil {
		return models.CycleRecord{}, false, err
	}
	return rec, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCycle(r rowScanner) (models.CycleRecord, error) {
	var (
		rec       models.CycleRecord
		startedAt int64
		endedAt   sql.NullInt64
		status    string
		errMsg    sql.NullString
	)
	err := r.Scan(&rec.ID, &startedAt, &endedAt, &status,
		&rec.Report.Fetched, &rec.Report.Candidates, &rec.Report.Deferred, &rec.Report.Notified, &errMsg)
	if err != nil {
		return models.CycleRecord{}, err
	}

	rec.StartedAt = time.UnixMilli(startedAt)
	if endedAt.Valid {
		t := time.UnixMilli(endedAt.Int64)
		rec.EndedAt = &t
	}
	rec.Status = models.CycleStatus(status)
	rec.Error = errMsg.String
	return rec, nil
}
