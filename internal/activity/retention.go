package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/store"
)

// DefaultSweepInterval is how often the retention worker runs when no
// interval is configured.
const DefaultSweepInterval = time.Hour

// StartRetentionWorker runs a background goroutine that deletes entries older
// than retention every interval, starting with an immediate sweep. The
// returned channel is closed once the goroutine exits after ctx is done.
func StartRetentionWorker(ctx context.Context, repo store.Repository, retention, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	done := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()
		slog.Info("Retention worker started", "interval", interval, "retention", retention)

		sweep(ctx, repo, retention)
		for {
			select {
			case <-ticker.C:
				sweep(ctx, repo, retention)
			case <-ctx.Done():
				slog.Info("Retention worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
	return done
}

func sweep(ctx context.Context, repo store.Repository, retention time.Duration) {
	if ctx.Err() != nil {
		return
	}
	removed, err := repo.PruneActivity(ctx, time.Now().Add(-retention))
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("Retention worker failed to prune activity", "error", err)
		}
		return
	}
	if removed > 0 {
		slog.Info("Retention worker pruned activity", "count", removed)
	}
}
