package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
)

// tickerWorker calls tick on every interval. A failed tick is logged and the
// next one runs as scheduled: a missed cycle only delays the work.
type tickerWorker struct {
	name     string
	interval time.Duration
	tick     func(ctx context.Context) error
	logger   *logger.Logger
}

func (w *tickerWorker) Name() string {
	return w.name
}

func (w *tickerWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.tick(ctx); err != nil && ctx.Err() == nil {
				w.logger.Err(err).Str("worker", w.name).Msg("worker tick failed")
			}
		}
	}
}

// NewExpiryPoller sweeps session slots for expired sessions every interval.
func NewExpiryPoller(sessions service.SessionManager, interval time.Duration, logger *logger.Logger) Worker {
	return &tickerWorker{
		name:     "expiry-poller",
		interval: interval,
		logger:   logger,
		tick: func(ctx context.Context) error {
			n, err := sessions.CheckAllSessionExpiry(ctx)
			if n > 0 {
				logger.Info().Str("worker", "expiry-poller").Int("expired", n).Msg("sessions expired")
			}
			return err
		},
	}
}

// NewAttemptPruner drops login attempts that no lock decision can use any
// more.
func NewAttemptPruner(lockout service.LockoutPolicy, clock utils.Clock, interval time.Duration, logger *logger.Logger) Worker {
	return &tickerWorker{
		name:     "attempt-pruner",
		interval: interval,
		logger:   logger,
		tick: func(ctx context.Context) error {
			n, err := lockout.Prune(ctx, clock.Now())
			if n > 0 {
				logger.Debug().Str("worker", "attempt-pruner").Int64("pruned", n).Msg("login attempts pruned")
			}
			return err
		},
	}
}
