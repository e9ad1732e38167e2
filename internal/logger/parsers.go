package logger

import (
	"strings"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// parseLevel maps a log_level value to a zerolog level. Empty means info; an
// unknown value also yields info, together with the error.
func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.WrapError(err, "invalid log level")
	}
	return parsed, nil
}

// parseFormat maps a log_format value; anything but json or text is console.
func parseFormat(format string) LogFormat {
	switch strings.ToLower(format) {
	case FormatJSON.String():
		return FormatJSON
	case FormatText.String():
		return FormatText
	default:
		return FormatConsole
	}
}
