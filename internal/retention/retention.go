// Package retention prunes old delivery log entries on a fixed schedule.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/notifyd/notifyd/internal/storage"
)

// pruneInterval is how often the prune job runs.
const pruneInterval = 12 * time.Hour

// Janitor periodically removes delivery log entries older than maxAge.
type Janitor struct {
	store  storage.DeliveryStore
	maxAge time.Duration
	logger *slog.Logger
	cron   gocron.Scheduler
}

// New creates a Janitor that keeps delivery log entries for maxAge.
func New(store storage.DeliveryStore, maxAge time.Duration, logger *slog.Logger) (*Janitor, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}
	return &Janitor{store: store, maxAge: maxAge, logger: logger, cron: cron}, nil
}

// Start schedules the recurring prune job and starts the scheduler.
func (j *Janitor) Start() error {
	_, err := j.cron.NewJob(
		gocron.DurationJob(pruneInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			j.RunOnce(ctx)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("scheduling prune job: %w", err)
	}
	j.cron.Start()
	return nil
}

// Stop shuts down the scheduler.
func (j *Janitor) Stop() {
	if err := j.cron.Shutdown(); err != nil {
		j.logger.Warn("stopping retention scheduler", "error", err)
	}
}

// RunOnce performs a single prune pass.
func (j *Janitor) RunOnce(ctx context.Context) {
	cutoff := time.Now().Add(-j.maxAge)
	n, err := j.store.PruneDeliveries(ctx, cutoff)
	if err != nil {
		j.logger.Error("pruning delivery log failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.Info("pruned delivery log entries", "count", n, "cutoff", cutoff)
	}
}
