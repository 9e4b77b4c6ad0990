package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/kiosk-gate/models"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrLocked              = errors.New("account locked")
	ErrWeakPIN             = errors.New("weak PIN")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// RequestError is a non-2xx answer of the server. Result holds the decoded
// failure envelope when the server sent one.
type RequestError struct {
	StatusCode int
	Result     models.OperationResult

	kind error
}

func (e *RequestError) Error() string {
	msg := e.Result.Error
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s (http %d): %s", e.kind, e.StatusCode, msg)
}

func (e *RequestError) Unwrap() error { return e.kind }

// RemainingAttempts returns the number of PIN attempts left, if the server
// reported it.
func (e *RequestError) RemainingAttempts() (int, bool) {
	if e.Result.RemainingAttempts == nil {
		return 0, false
	}
	return *e.Result.RemainingAttempts, true
}

// LockedUntil returns the end of the lockout window, if the server reported
// it.
func (e *RequestError) LockedUntil() (time.Time, bool) {
	if e.Result.LockedUntil == nil {
		return time.Time{}, false
	}
	return *e.Result.LockedUntil, true
}
