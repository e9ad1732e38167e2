package logger

import "github.com/aleister1102/commitsentry/internal/config"

// ConfigConverter converts config.LogConfig to LoggerConfig
type ConfigConverter struct{}

// NewConfigConverter creates a new config converter
func NewConfigConverter() *ConfigConverter {
	return &ConfigConverter{}
}

// ConvertConfig converts application config to logger config. An unknown level falls
// back to info and is reported alongside the converted config.
func (cc *ConfigConverter) ConvertConfig(cfg config.LogConfig) (LoggerConfig, error) {
	level, err := parseLevel(cfg.LogLevel)

	return LoggerConfig{
		Level:         level,
		Format:        parseFormat(cfg.LogFormat),
		EnableConsole: true,
		EnableFile:    cfg.LogFile != "",
		FilePath:      cfg.LogFile,
		MaxSizeMB:     positiveOr(cfg.MaxLogSizeMB, defaultMaxSizeMB),
		MaxBackups:    positiveOr(cfg.MaxLogBackups, defaultMaxBackups),
		CycleLogs:     true,
	}, err
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
