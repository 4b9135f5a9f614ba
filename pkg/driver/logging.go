package driver

import (
	"io"
	"os"
	"strings"

	"github.com/oarkflow/log"
)

// EnvLogLevel overrides the manifest's logging.level.
const EnvLogLevel = "XLANG_LOG_LEVEL"

// ParseLevel maps a level name to a log level.
func ParseLevel(name string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.TraceLevel, true
	case "debug":
		return log.DebugLevel, true
	case "info":
		return log.InfoLevel, true
	case "warn", "warning":
		return log.WarnLevel, true
	case "error":
		return log.ErrorLevel, true
	default:
		return log.WarnLevel, false
	}
}

// NewLogger builds the host logger. The level comes from XLANG_LOG_LEVEL,
// then the manifest, then warn.
func NewLogger(manifest *Manifest, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, ok := ParseLevel(os.Getenv(EnvLogLevel))
	if !ok && manifest != nil {
		level, _ = ParseLevel(manifest.Logging.Level)
	}
	return &log.Logger{
		Level:  level,
		Writer: &log.IOWriter{Writer: w},
	}
}
