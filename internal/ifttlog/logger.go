// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ifttlog provides the two logging destinations the linter uses.
//
// User-visible violation diagnostics are written to a caller-supplied
// io.Writer with fmt.Fprintln, never through this package — the "[ifttt] "
// wire format must be exact, and an slog handler is free to reformat,
// reorder, or add keys. This package covers the other destination only:
// verbose structured trace events, active only when requested, and always
// on the standard error stream.
package ifttlog

import (
	"io"
	"log/slog"
	"os"
)

// Level is this package's log-severity type, bridged to slog.Level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures a Logger. A zero-value Config produces a Debug-level
// text logger on stderr (LevelDebug is the zero Level).
type Config struct {
	Level Level
	JSON  bool
	Quiet bool
}

// Logger wraps a *slog.Logger.
//
// Thread Safety: safe for concurrent use; slog.Logger already is.
type Logger struct {
	slog *slog.Logger
}

// New creates a Logger from cfg. Quiet discards everything written to it
// (diagnostics still reach their own writer independently of this).
func New(cfg Config) *Logger {
	if cfg.Quiet {
		return &Logger{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
	}

	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return &Logger{slog: slog.New(handler)}
}

// Default returns an Info-level text logger on stderr.
func Default() *Logger {
	return New(Config{Level: LevelInfo})
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Slog returns the underlying structured logger for callers that need
// direct access (e.g. slog.With-style child loggers).
func (l *Logger) Slog() *slog.Logger { return l.slog }
