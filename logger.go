package pane

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely,
// making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called concurrently with logging from the render loop.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for pane and all its subpackages.
// By default, pane produces no log output. Pass nil to restore the default
// silent behavior.
//
// Log levels used by pane:
//   - [slog.LevelDebug]: per-frame diagnostics (display list length, buffer sizes)
//   - [slog.LevelInfo]: lifecycle events (GPU device selected, snapshot written)
//   - [slog.LevelWarn]: non-fatal issues (export failure, surface recreation)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Subpackages (render, window, export)
// call this to share the same configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
