package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
)

// LevelSuccess sits between Info and Warn and is printed as "OK".
const LevelSuccess = slog.Level(2)

var logger atomic.Pointer[slog.Logger]

func init() {
	SetupLogger(os.Stdout, "info", false)
}

// SetupLogger replaces the process logger.
// level is one of debug, info, warn, error.
func SetupLogger(w io.Writer, level string, noColor bool) {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelSuccess {
					return tint.Attr(2, slog.String(slog.LevelKey, "OK "))
				}
			}
			return a
		},
	})
	logger.Store(slog.New(handler))
}

// Logger returns the process logger for structured key/value logging.
func Logger() *slog.Logger {
	return logger.Load()
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Info(format string, a ...interface{}) {
	Logger().Info(fmt.Sprintf(format, a...))
}

func Success(format string, a ...interface{}) {
	Logger().Log(context.Background(), LevelSuccess, fmt.Sprintf(format, a...))
}

func Warn(format string, a ...interface{}) {
	Logger().Warn(fmt.Sprintf(format, a...))
}

func Error(format string, a ...interface{}) {
	Logger().Error(fmt.Sprintf(format, a...))
}

func Debug(format string, a ...interface{}) {
	Logger().Debug(fmt.Sprintf(format, a...))
}

func Section(title string) {
	Logger().Info(fmt.Sprintf("══════════ %s ══════════", title))
}
