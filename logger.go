package fractal

import (
	"log/slog"
	"sync/atomic"
)

// loggerPtr holds the active logger. It is read on every render and may be
// replaced concurrently by SetLogger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger configures the logger used by fractal.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Renders log at [slog.LevelDebug]: the kind of fractal, grid dimensions,
// and how the grid was partitioned.
//
// Example:
//
//	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the logger used by fractal. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
