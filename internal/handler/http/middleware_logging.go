package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
)

// withLogging writes one access log line per request. Bodies are never
// logged since they carry PINs.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Str("device_id", r.Header.Get(deviceIDHeader)).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
