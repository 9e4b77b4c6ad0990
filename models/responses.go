// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OperationResult is the {success, error?} envelope returned to the UI shell
// for every operation.
type OperationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// RemainingAttempts is set on a wrong-PIN failure.
	RemainingAttempts *int `json:"remaining_attempts,omitempty"`

	// LockedUntil is set when the profile is (or just became) locked.
	LockedUntil *time.Time `json:"locked_until,omitempty"`

	Session *AuthSession `json:"session,omitempty"`
	Profile *UserProfile `json:"profile,omitempty"`
}

// SessionStatus answers the session poll: whether an expiry transition just
// happened and the session still held by the device, if any.
type SessionStatus struct {
	Expired bool         `json:"expired"`
	Session *AuthSession `json:"session,omitempty"`
}
