package monitor

import (
	"context"
	"time"

	"github.com/aleister1102/commitsentry/internal/models"
)

// Notifier is the part of notifier.Dispatcher the engine drives.
type Notifier interface {
	EnsurePermission(ctx context.Context) error
	Notify(ctx context.Context, folder string, commit models.Commit) error
	ApplySoundSettings(enabled bool, soundID string)
}

// Ledger is the part of datastore.NotifiedLedger the engine drives.
type Ledger interface {
	IsNotified(id string) bool
	Add(ctx context.Context, id string) error
}

// ConfigurationSaver persists the monitor configuration.
type ConfigurationSaver interface {
	Save(ctx context.Context, cfg models.MonitorConfiguration) error
}

// CycleRecorder keeps the history of cycles.
type CycleRecorder interface {
	RecordCycleStart(ctx context.Context, cycleID string, startedAt time.Time) error
	UpdateCycleCompletion(ctx context.Context, cycleID string, endedAt time.Time, status models.CycleStatus, report models.CycleReport, errMsg string) error
}
