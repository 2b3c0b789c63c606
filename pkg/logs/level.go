package logs

import (
	"fmt"
	"log/slog"
	"strings"
)

var level = new(slog.LevelVar)

// SetLevel sets the level of every logger built by Module.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel accepts debug, info, warn and error, in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level: %q", s)
}
