package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/venue-service/internal/service"
)

// AutoCheckoutWorker periodically force-closes visits that exceeded the
// session limit, keeping occupancy counts honest when clients never check
// out.
type AutoCheckoutWorker struct {
	checkIns *service.CheckInService
	logger   *zap.Logger
	interval time.Duration
}

// NewAutoCheckoutWorker builds the worker.
func NewAutoCheckoutWorker(checkIns *service.CheckInService, interval time.Duration, logger *zap.Logger) *AutoCheckoutWorker {
	return &AutoCheckoutWorker{checkIns: checkIns, logger: logger, interval: interval}
}

// Run sweeps until the context is cancelled.
func (w *AutoCheckoutWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *AutoCheckoutWorker) sweep(ctx context.Context) {
	visits, err := w.checkIns.StaleOpenVisits(ctx)
	if err != nil {
		w.logger.Error("stale visit lookup failed", zap.Error(err))
		return
	}

	for _, visit := range visits {
		if err := w.checkIns.AutoCheckOut(ctx, visit); err != nil {
			w.logger.Error("auto check-out failed",
				zap.Int64("venue_id", visit.VenueID),
				zap.Int64("user_id", visit.UserID),
				zap.Error(err))
			continue
		}
		w.logger.Info("auto check-out",
			zap.Int64("venue_id", visit.VenueID),
			zap.Int64("user_id", visit.UserID),
			zap.Time("since", visit.Since))
	}

	if len(visits) > 0 {
		w.logger.Info("auto check-out sweep finished", zap.Int("closed", len(visits)))
	}
}
