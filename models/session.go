// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuthSession is the single live credential grant held in a device's
// session slot. A new login on the same device replaces the slot.
type AuthSession struct {
	// ID identifies this grant. It is also the "jti" of the bearer token so
	// that a superseded token can be told apart from the live one.
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	DeviceID  string    `json:"device_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsKiosk   bool      `json:"is_kiosk"`

	// Token is the signed bearer token handed to the caller. It is never
	// persisted.
	Token string `json:"token,omitempty"`
}

// Expired reports whether the session is past its expiry at now.
func (s AuthSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the AuthSession model.
func (s AuthSession) TableName() string {
	return "sessions"
}
