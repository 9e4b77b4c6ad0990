package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/crypto"
)

// Caller-facing error taxonomy. Match with [errors.Is]; the typed errors
// below unwrap to these.
var (
	ErrInvalidCredential = errors.New("invalid PIN")
	ErrAccountLocked     = errors.New("account is locked")
	ErrAccountSuspended  = errors.New("account is suspended")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrDuplicateName     = errors.New("a profile with this name already exists")
	ErrWeakCredential    = errors.New("PIN is too weak")
	ErrCorruptCredential = crypto.ErrCorruptCredential
	ErrSessionExpired    = errors.New("session expired or invalid")

	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrForbidden           = errors.New("operation not permitted")
	ErrNameTooShort        = errors.New("name must be at least 2 characters")
)

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrTokenCreationFailed   = errors.New("session token creation failed")
)

// InvalidCredentialError is returned for a wrong PIN. Remaining is the number
// of failures still allowed before lockout; LockedUntil is set when this
// attempt triggered the lock.
type InvalidCredentialError struct {
	Remaining   int
	LockedUntil *time.Time
}

func (e *InvalidCredentialError) Error() string {
	if e.LockedUntil != nil {
		return fmt.Sprintf("%s: account locked until %s", ErrInvalidCredential, e.LockedUntil.Format(time.RFC3339))
	}
	return fmt.Sprintf("%s: %d attempt(s) remaining", ErrInvalidCredential, e.Remaining)
}

func (e *InvalidCredentialError) Unwrap() error { return ErrInvalidCredential }

// LockedError is returned while a lockout window is active.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s until %s", ErrAccountLocked, e.Until.Format(time.RFC3339))
}

func (e *LockedError) Unwrap() error { return ErrAccountLocked }

// WeakCredentialError names the PIN rule that was violated.
type WeakCredentialError struct {
	Reason string
}

func (e *WeakCredentialError) Error() string {
	return fmt.Sprintf("%s: %s", ErrWeakCredential, e.Reason)
}

func (e *WeakCredentialError) Unwrap() error { return ErrWeakCredential }
