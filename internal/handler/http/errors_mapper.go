package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredential:   http.StatusUnauthorized,
	service.ErrSessionExpired:      http.StatusUnauthorized,
	service.ErrAccountLocked:       http.StatusLocked,
	service.ErrAccountSuspended:    http.StatusForbidden,
	service.ErrForbidden:           http.StatusForbidden,
	service.ErrProfileNotFound:     http.StatusNotFound,
	service.ErrDuplicateName:       http.StatusConflict,
	service.ErrWeakCredential:      http.StatusUnprocessableEntity,
	service.ErrCorruptCredential:   http.StatusInternalServerError,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrMissingDeviceID:            http.StatusBadRequest,
	ErrTooManyRequests:            http.StatusTooManyRequests,
	ErrInvalidLimit:               http.StatusBadRequest,

	store.ErrNameAlreadyExists: http.StatusConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
