// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an untouched device limiter is kept.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// deviceLimiter hands out one token bucket per device ID.
type deviceLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

// newDeviceLimiter returns nil when limit or burst is not positive, which
// disables rate limiting.
func newDeviceLimiter(limit float64, burst int) *deviceLimiter {
	if limit <= 0 || burst <= 0 {
		return nil
	}
	return &deviceLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(limit),
		burst:    burst,
	}
}

func (d *deviceLimiter) allow(deviceID string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if now.Sub(d.lastSweep) > limiterIdleTTL {
		for id, entry := range d.limiters {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(d.limiters, id)
			}
		}
		d.lastSweep = now
	}

	entry, ok := d.limiters[deviceID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(d.limit, d.burst)}
		d.limiters[deviceID] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (d *deviceLimiter) size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.limiters)
}

// withRateLimit rejects requests of a device that exceeds its token bucket
// with 429. It must run after withDeviceID.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		deviceID, _ := utils.GetDeviceIDFromContext(r.Context())
		if !h.limiter.allow(deviceID, h.clock.Now()) {
			w.Header().Set("Retry-After", "1")
			writeError(w, r, ErrTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
