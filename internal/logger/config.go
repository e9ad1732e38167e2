package logger

import "github.com/rs/zerolog"

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 3
	cycleLogDir       = "cycles"
)

// LoggerConfig is the resolved logger setup. When CycleLogs is set and CycleID
// is not empty, file output of that check cycle goes to
// <dir of FilePath>/cycles/<CycleID>/<base of FilePath> so one manual check
// can be read on its own.
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
	CycleID       string
	CycleLogs     bool
}

// LogFormat selects the writer strategy.
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// DefaultLoggerConfig logs at info level to the console only.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		MaxSizeMB:     defaultMaxSizeMB,
		MaxBackups:    defaultMaxBackups,
	}
}
