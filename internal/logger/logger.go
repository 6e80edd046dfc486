package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// L is the process-wide logger. Init replaces it once the configuration
// is known.
var L = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// ParseLevel maps debug|info|warn|error to a slog level. Unknown names
// fall back to info and report ok=false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Init builds the global logger writing to w (stderr when nil) in either
// "text" or "json" format and installs it as the slog default.
func Init(levelStr, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, ok := ParseLevel(levelStr)

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	L = slog.New(handler)
	slog.SetDefault(L)

	if !ok {
		L.Warn("invalid log level, defaulting to info", "configured", levelStr)
	}
	L.Debug("logger initialized", "level", level.String(), "format", format)
	return L
}

// Discard returns a logger that drops every record. Tests use it.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
