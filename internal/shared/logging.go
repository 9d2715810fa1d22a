package shared

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// InitLogger wires the process-wide slog default. Pass console=false (the
// logToConsole analyzer setting) to discard output entirely; scans stay quiet
// unless asked otherwise.
func InitLogger(format, level string, console bool) *slog.Logger {
	var h slog.Handler
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	out := io.Writer(os.Stdout)
	if !console {
		out = io.Discard
	}
	if strings.ToLower(format) == "text" {
		h = slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
