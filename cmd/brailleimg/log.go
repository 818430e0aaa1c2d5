package main

import (
	"io"
	"log/slog"
	"os"
)

// newLogger logs errors only by default, info with -v 1 and everything with
// -v 2. BRAILLE_LOG=error|warn|info|debug takes precedence.
func newLogger(w io.Writer, verbose int) *slog.Logger {
	level := slog.LevelError
	switch {
	case verbose == 1:
		level = slog.LevelInfo
	case verbose > 1:
		level = slog.LevelDebug
	}
	if env := os.Getenv("BRAILLE_LOG"); env != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(env)); err == nil {
			level = l
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
