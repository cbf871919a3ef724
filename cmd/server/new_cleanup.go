package main

import (
	"context"
	"io"
	"log/slog"
)

// shutdowner abstracts the telemetry providers so tests can verify cleanup
// behavior without constructing real exporters.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup constructs the shutdown hook: close the store first so its
// final log lines are still exported, then flush telemetry.
func newCleanup(ctx context.Context, telemetry shutdowner, store io.Closer) func() {
	return func() {
		if store != nil {
			if err := store.Close(); err != nil {
				slog.Error("failed to close store", slog.String("error", err.Error()))
			}
		}

		if telemetry != nil {
			flushCtx, cancel := context.WithTimeout(ctx, telemetryFlushTimeout)
			defer cancel()
			if err := telemetry.Shutdown(flushCtx); err != nil {
				slog.Error("failed to shut down telemetry", slog.String("error", err.Error()))
			}
		}
	}
}
