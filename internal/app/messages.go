// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the operator-facing wording shared by kioskctl and the
// kiosk picker.
//
// [Describe] turns adapter errors into one-line messages, including the
// remaining attempts and lockout expiry the server reports with a rejected
// PIN.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/kiosk-gate/internal/adapter"
)

const (
	// MsgInvalidPIN is shown for a rejected PIN.
	MsgInvalidPIN = "wrong PIN"

	// MsgAccountLocked is shown while the lockout window of a profile is
	// active.
	MsgAccountLocked = "account is locked"

	// MsgSessionExpired is shown when the device holds no live session.
	MsgSessionExpired = "session expired, please log in again"

	// MsgAccessDenied is shown when the operation needs an administrator or
	// the profile is suspended.
	MsgAccessDenied = "access denied"

	// MsgTooManyRequests is shown when the device is rate limited.
	MsgTooManyRequests = "too many requests, wait a moment"

	// MsgServerUnavailable is shown when the server cannot be reached.
	MsgServerUnavailable = "server is unavailable"

	// MsgInternalServerError is shown for server-side failures.
	MsgInternalServerError = "internal server error"

	// MsgPINFormat is shown when a typed PIN is not four digits.
	MsgPINFormat = "PIN must be 4 digits"
)

// lockTimeLayout renders lockout expiries in the kiosk's local time.
const lockTimeLayout = "15:04"

// Describe returns the operator-facing message for err.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *adapter.RequestError
	if errors.As(err, &reqErr) {
		return describeRequestError(reqErr)
	}

	if isUnreachable(err) {
		return MsgServerUnavailable
	}
	return err.Error()
}

func describeRequestError(reqErr *adapter.RequestError) string {
	until, locked := reqErr.LockedUntil()

	switch {
	case errors.Is(reqErr, adapter.ErrUnauthorized):
		remaining, ok := reqErr.RemainingAttempts()
		switch {
		case !ok:
			return MsgSessionExpired
		case locked:
			return fmt.Sprintf("%s, %s until %s", MsgInvalidPIN, MsgAccountLocked, until.Local().Format(lockTimeLayout))
		default:
			return fmt.Sprintf("%s, %d attempt(s) left", MsgInvalidPIN, remaining)
		}
	case errors.Is(reqErr, adapter.ErrLocked):
		if locked {
			return fmt.Sprintf("%s until %s", MsgAccountLocked, until.Local().Format(lockTimeLayout))
		}
		return MsgAccountLocked
	case errors.Is(reqErr, adapter.ErrTooManyRequests):
		return MsgTooManyRequests
	case errors.Is(reqErr, adapter.ErrInternalServerError):
		if reqErr.Result.Error != "" {
			return reqErr.Result.Error
		}
		return MsgInternalServerError
	case errors.Is(reqErr, adapter.ErrForbidden) && reqErr.Result.Error == "":
		return MsgAccessDenied
	}

	if reqErr.Result.Error != "" {
		return reqErr.Result.Error
	}
	return reqErr.Error()
}

func isUnreachable(err error) bool {
	s := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"dial tcp",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"context deadline exceeded",
	} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
