package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/kiosk-gate/internal/utils"
)

const deviceIDHeader = "X-Device-ID"

// withDeviceID requires the X-Device-ID header and stores it in the request
// context.
func (h *Handler) withDeviceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := strings.TrimSpace(r.Header.Get(deviceIDHeader))
		if deviceID == "" {
			writeError(w, r, ErrMissingDeviceID)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithDeviceID(r.Context(), deviceID)))
	})
}
