// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
)

type Workers struct {
	workers []Worker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewWorkers builds the session-expiry poller and the attempt pruner. A
// zero interval disables the matching worker.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{logger: logger}

	if cfg.ExpiryPollInterval > 0 {
		w.workers = append(w.workers, NewExpiryPoller(services.Sessions, cfg.ExpiryPollInterval, logger))
	}
	if cfg.PruneInterval > 0 {
		w.workers = append(w.workers, NewAttemptPruner(services.Lockout, utils.SystemClock{}, cfg.PruneInterval, logger))
	}

	return w
}

// Start runs every worker on its own goroutine until Stop is called or ctx
// is done. Calling Start twice without Stop is a no-op.
func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	ctx, w.cancel = context.WithCancel(ctx)
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()

			w.logger.Info().Str("worker", worker.Name()).Msg("worker started")
			worker.Run(ctx)
			w.logger.Info().Str("worker", worker.Name()).Msg("worker stopped")
		}(worker)
	}
}

// Stop cancels all workers and waits for them to return.
func (w *Workers) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	w.wg.Wait()
}
