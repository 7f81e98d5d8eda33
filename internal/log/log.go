// Package log is FocusMind's structured logging layer, a thin wrapper
// around slog. The monitor owns stdout for scores and prompts; all log
// output goes to stderr.
package log

import (
	"log/slog"
	"os"
	"sync"
)

var (
	logger *slog.Logger
	once   sync.Once
)

// Init configures the process-wide logger and installs it as the slog
// default. Valid levels: "debug", "info", "warn", "error".
func Init(level string) {
	once.Do(func() {
		logger = slog.New(newHandler(parseLevel(level)))
		slog.SetDefault(logger)
	})
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newHandler picks the output format from FOCUSMIND_LOG_FORMAT:
// text unless set to "json". Debug level adds source locations.
func newHandler(lvl slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}
	if os.Getenv("FOCUSMIND_LOG_FORMAT") == "json" {
		return slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.NewTextHandler(os.Stderr, opts)
}

func l() *slog.Logger {
	if logger == nil {
		Init("info")
	}
	return logger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	l().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	l().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	l().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	l().Error(msg, args...)
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return l().With(args...)
}
