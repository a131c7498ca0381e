// Package logging provides a tiny abstraction over slog so the rest of the
// module can depend on a minimal interface (Logger) while hosts plug in any
// structured logger. The default everywhere is NoOpLogger: this integration
// surfaces nothing to users through logs, so logging exists purely for
// debugging a misbehaving worker connection.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger defines the minimal logging interface used throughout the module.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter satisfies Logger by embedding *slog.Logger; the embedded
// methods already have the right shapes.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewTextLogger creates a debug-level text Logger writing to w (os.Stderr when
// w is nil). Intended for local troubleshooting of the worker connection.
func NewTextLogger(w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

// NoOpLogger discards all log messages. This is the default for every
// component: the plugin's only user-facing signal is the notification channel.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...any) {}
func (NoOpLogger) Info(string, ...any)  {}
func (NoOpLogger) Warn(string, ...any)  {}
func (NoOpLogger) Error(string, ...any) {}

// OrNoOp returns l, or NoOpLogger when l is nil. Constructors use it so a nil
// logger option is always safe.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOpLogger{}
	}
	return l
}
