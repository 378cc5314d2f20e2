package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/support-kit/analytics-service/internal/service"
)

// SyncWorker drives the periodic view rebuild. One run executes immediately
// on start, then every interval. The sync service enforces mutual exclusion,
// so a tick firing while a run is still going is skipped, never queued.
type SyncWorker struct {
	sync     *service.SyncService
	interval time.Duration
	logger   *zap.Logger
}

// NewSyncWorker creates the worker.
func NewSyncWorker(syncService *service.SyncService, interval time.Duration, logger *zap.Logger) *SyncWorker {
	if interval <= 0 {
		interval = 3 * time.Hour
	}
	return &SyncWorker{
		sync:     syncService,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the schedule loop until the context is cancelled. Run errors
// are logged and swallowed here; the schedule must keep ticking regardless
// of the previous run's outcome.
func (w *SyncWorker) Start(ctx context.Context) {
	w.logger.Info("sync worker started", zap.Duration("interval", w.interval))

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sync worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SyncWorker) runOnce(ctx context.Context) {
	if err := w.sync.Run(ctx); err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			w.logger.Warn("previous sync still running; skipping tick")
			return
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		w.logger.Error("sync run failed; will retry next tick", zap.Error(err))
	}
}
