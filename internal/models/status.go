package models

import "time"

// EngineState is the coarse state surfaced to the UI.
type EngineState string

const (
	EngineStateInitializing EngineState = "initializing"
	EngineStateIdle         EngineState = "idle"
	EngineStateFailed       EngineState = "failed"
)

// EngineStatus is what GetStatus returns. Message is only set for EngineStateFailed.
type EngineStatus struct {
	State   EngineState `json:"state"`
	Message string      `json:"message,omitempty"`
}

// CycleStatus is the lifecycle state of a single check cycle.
type CycleStatus string

const (
	CycleStatusInitializing CycleStatus = "INITIALIZING"
	CycleStatusRunning      CycleStatus = "RUNNING"
	CycleStatusIdle         CycleStatus = "IDLE"
	CycleStatusFailed       CycleStatus = "FAILED"
	CycleStatusCancelled    CycleStatus = "CANCELLED"
	CycleStatusSkipped      CycleStatus = "SKIPPED"
)

// CycleReport summarises the work done by one cycle.
type CycleReport struct {
	Fetched    int `json:"fetched"`
	Candidates int `json:"candidates"`
	Deferred   int `json:"deferred"`
	Notified   int `json:"notified"`
}

// CycleRecord is the persisted history entry of a cycle.
type CycleRecord struct {
	ID        string
	StartedAt time.Time
	EndedAt   *time.Time
	Status    CycleStatus
	Report    CycleReport
	Error     string
}
