// Package types holds the logging plumbing shared by the reader, parser
// and converter packages.
package types

import (
	"context"
	"log/slog"
)

// LevelTrace sits below slog.LevelDebug. Readers log one record per token,
// RDF node or resolved reference at this level, so it is only useful when
// chasing a single document. Set HandlerOptions.Level to slog.Level(-8).
const LevelTrace = slog.Level(-8)

var bg = context.Background()

// Logger is a *slog.Logger that may be nil. A nil L discards everything,
// which lets callers skip building attributes when nobody is listening.
type Logger struct {
	L *slog.Logger
}

func (l *Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(bg, level)
}

// Log writes msg with attrs when level is enabled.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.Enabled(level) {
		l.L.LogAttrs(bg, level, msg, attrs...)
	}
}

func (l *Logger) TraceEnabled() bool { return l.Enabled(LevelTrace) }

func (l *Logger) Trace(msg string, attrs ...slog.Attr) { l.Log(LevelTrace, msg, attrs...) }

// Component derives a logger whose records carry component=name. It
// returns nil for a nil logger.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", name))
}
