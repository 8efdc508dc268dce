package worker

import (
	"context"
	"time"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// Syncer runs one full reconciliation
type Syncer interface {
	FullBidirectional(ctx context.Context) *model.FullSyncResult
}

// SyncWorker runs a full reconciliation on a fixed interval.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - Manual triggers may overlap with a scheduled run; pushes then race
type SyncWorker struct {
	syncer     Syncer
	interval   time.Duration
	runOnStart bool
	stopCh     chan struct{}
	doneCh     chan struct{}
}

type SyncWorkerOption func(*SyncWorker)

// WithRunOnStart runs a reconciliation as soon as the worker starts
func WithRunOnStart(enabled bool) SyncWorkerOption {
	return func(w *SyncWorker) {
		w.runOnStart = enabled
	}
}

// NewSyncWorker creates a worker running syncer every interval
func NewSyncWorker(syncer Syncer, interval time.Duration, opts ...SyncWorkerOption) *SyncWorker {
	w := &SyncWorker{
		syncer:   syncer,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the background loop. It does not block.
func (w *SyncWorker) Start(ctx context.Context) {
	logging.From(ctx).Info("Sync worker starting",
		"interval", w.interval.String(),
		"run_on_start", w.runOnStart)

	go w.run(ctx)
}

// Stop signals the worker to stop and waits for the current run to finish
func (w *SyncWorker) Stop() {
	logging.Default().Info("Sync worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Sync worker stopped")
}

func (w *SyncWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if w.runOnStart {
		w.runOnce(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.From(ctx).Info("Sync worker context cancelled")
			return
		}
	}
}

// runOnce logs the outcome; failed runs are recorded and notified by the syncer
func (w *SyncWorker) runOnce(ctx context.Context) {
	startTime := time.Now()
	result := w.syncer.FullBidirectional(ctx)

	attrs := []any{"success", result.Success, "duration", time.Since(startTime).String()}
	if result.Pull != nil {
		attrs = append(attrs, "pulled", result.Pull.Total())
	}
	if result.Push != nil {
		attrs = append(attrs, "pushed", result.Push.Total())
	}

	if result.Success {
		logging.From(ctx).Info("Scheduled sync completed", attrs...)
	} else {
		logging.From(ctx).Warn("Scheduled sync failed (will retry next interval)", attrs...)
	}
}
