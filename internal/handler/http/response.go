package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"github.com/MKhiriev/kiosk-gate/models"
)

const internalErrorMessage = "internal server error"

func writeResult(w http.ResponseWriter, r *http.Request, result models.OperationResult, status int) {
	if _, err := utils.WriteJSON(w, result, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeResult").Msg("error writing response")
	}
}

// writeError renders err as a failed [models.OperationResult]. Details of
// server-side failures are logged and replaced by a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	result := models.OperationResult{Error: err.Error()}

	var invalid *service.InvalidCredentialError
	var locked *service.LockedError
	switch {
	case errors.As(err, &invalid):
		remaining := invalid.Remaining
		result.RemainingAttempts = &remaining
		result.LockedUntil = invalid.LockedUntil
	case errors.As(err, &locked):
		until := locked.Until
		result.LockedUntil = &until
	}

	if status >= http.StatusInternalServerError {
		if errors.Is(err, service.ErrCorruptCredential) {
			result.Error = service.ErrCorruptCredential.Error()
		} else {
			result.Error = internalErrorMessage
		}
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	writeResult(w, r, result, status)
}
