package config

import "time"

// EngineConfig holds the pacing knobs of a check cycle.
type EngineConfig struct {
	FetchTimeoutMs     int    `json:"fetch_timeout_ms,omitempty" yaml:"fetch_timeout_ms,omitempty" validate:"omitempty,min=1"`
	MaxCommitsPerCycle int    `json:"max_commits_per_cycle,omitempty" yaml:"max_commits_per_cycle,omitempty" validate:"omitempty,min=1"`
	BatchSize          int    `json:"batch_size,omitempty" yaml:"batch_size,omitempty" validate:"omitempty,min=1"`
	BatchDelayMs       int    `json:"batch_delay_ms,omitempty" yaml:"batch_delay_ms,omitempty" validate:"omitempty,min=0"`
	FolderMatchMode    string `json:"folder_match_mode,omitempty" yaml:"folder_match_mode,omitempty" validate:"omitempty,matchmode"`
}

// NewDefaultEngineConfig creates default engine configuration
func NewDefaultEngineConfig() EngineConfig {
	return EngineConfig{
		FetchTimeoutMs:     DefaultEngineFetchTimeoutMs,
		MaxCommitsPerCycle: DefaultEngineMaxCommitsPerCycle,
		BatchSize:          DefaultEngineBatchSize,
		BatchDelayMs:       DefaultEngineBatchDelayMs,
		FolderMatchMode:    DefaultEngineFolderMatchMode,
	}
}

func (ec EngineConfig) FetchTimeout() time.Duration {
	return time.Duration(ec.FetchTimeoutMs) * time.Millisecond
}

func (ec EngineConfig) BatchDelay() time.Duration {
	return time.Duration(ec.BatchDelayMs) * time.Millisecond
}
