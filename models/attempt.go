package models

import "time"

// LoginAttempt is an immutable record of one PIN verification against a
// profile. Attempts are only appended, and are safe to prune once they fall
// outside the lockout look-back horizon.
type LoginAttempt struct {
	ProfileID string    `json:"profile_id"`
	At        time.Time `json:"at"`
	Success   bool      `json:"success"`
	DeviceID  string    `json:"device_id"`
}

// LockoutEntry caches the computed lock expiry of a profile. It is not
// authoritative and can always be recomputed from the attempt history.
type LockoutEntry struct {
	ProfileID   string    `json:"profile_id"`
	LockedUntil time.Time `json:"locked_until"`
}
