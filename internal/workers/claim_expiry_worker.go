package workers

import (
	"context"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

const claimSweepBatch = 100

// ClaimExpiryWorker times out race claims whose selection or
// confirmation window lapsed, rolling back their provisional effects.
type ClaimExpiryWorker struct {
	races   *services.RaceService
	metrics *metrics.MetricsRegistry
}

func NewClaimExpiryWorker(races *services.RaceService, metricsReg *metrics.MetricsRegistry) *ClaimExpiryWorker {
	return &ClaimExpiryWorker{races: races, metrics: metricsReg}
}

// Start sweeps immediately and then every interval until ctx is cancelled
func (w *ClaimExpiryWorker) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Claim expiry worker starting", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Claim expiry worker shutting down")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *ClaimExpiryWorker) run(ctx context.Context) {
	started := time.Now()
	expired, err := w.Sweep(ctx)
	w.metrics.ObserveWorkerRun("claim_expiry", time.Since(started).Seconds())
	if err != nil {
		logging.Error("Claim sweep failed", "error", err)
		return
	}
	if expired > 0 {
		logging.Info("Expired race claims rolled back", "count", expired)
	}
}

// Sweep expires due claims in batches until none are left and refreshes
// the open-claims gauge.
func (w *ClaimExpiryWorker) Sweep(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := w.races.ExpireDue(ctx, claimSweepBatch)
		total += n
		if err != nil {
			return total, err
		}
		if n < claimSweepBatch {
			break
		}
	}

	open, err := w.races.OpenClaims(ctx)
	if err != nil {
		return total, err
	}
	w.metrics.SetOpenClaims(open)
	return total, nil
}
