package main

import (
	"fmt"
	"log/slog"
	"os"
)

// newLogger builds the app logger. The TUI owns the terminal, so logs only
// go to a file; without one they are discarded. The returned close func is
// always non-nil.
func newLogger(cfg config) (*slog.Logger, func() error, error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel})
	return slog.New(handler).With("app", "medtrack"), f.Close, nil
}
