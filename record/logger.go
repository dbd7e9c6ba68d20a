package record

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled returning false lets callers
// skip formatting entirely, so disabled logging costs nothing on the
// encoder's hot path. Adapted from gg's logger.go.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by package record. By default
// record produces no log output. Pass nil to restore silent behavior.
//
// Log levels used by record:
//   - [slog.LevelDebug]: a peephole optimization fired (which transform,
//     which stream offsets).
//   - [slog.LevelWarn]: degraded-but-defined behavior (restore with no
//     matching save, a draw_bitmap whose bitmap insert returns the invalid
//     handle; the other bitmap draws write the invalid handle without
//     logging).
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
