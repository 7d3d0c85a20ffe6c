package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/pwpl/pds-engine/internal/metrics"
	"github.com/pwpl/pds-engine/internal/storage"
)

// Cleaner periodically prunes archived reports older than the retention
type Cleaner struct {
	repo      storage.Repository
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewCleaner creates a new cleanup worker
func NewCleaner(repo storage.Repository, interval, retention time.Duration) *Cleaner {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	return &Cleaner{
		repo:      repo,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval, "retention", c.retention)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.RunOnce(ctx)
		}
	}
}

// RunOnce deletes archived reports created before now minus the retention
// and returns how many were removed
func (c *Cleaner) RunOnce(ctx context.Context) int64 {
	cutoff := c.now().Add(-c.retention)
	slog.Debug("running cleanup cycle", "cutoff", cutoff)

	n, err := c.repo.DeleteReportsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("failed to prune archived reports", "error", err)
		return 0
	}

	if n == 0 {
		slog.Debug("no expired reports found")
		return 0
	}

	metrics.ReportsPruned.Add(float64(n))
	slog.Info("expired reports deleted", "count", n, "cutoff", cutoff)
	return n
}
