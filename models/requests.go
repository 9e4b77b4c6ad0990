// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SignupRequest is the input of the signup operation.
type SignupRequest struct {
	DeviceID string `json:"-"`
	Name     string `json:"name"`
	PIN      string `json:"pin"`
	Role     Role   `json:"role"`
	Kiosk    bool   `json:"kiosk"`
}

// LoginRequest is the input of the login operation.
type LoginRequest struct {
	DeviceID  string `json:"-"`
	ProfileID string `json:"profile_id"`
	PIN       string `json:"pin"`
	Kiosk     bool   `json:"kiosk"`
}

// LoginByNameRequest resolves Name to a profile and then logs in.
type LoginByNameRequest struct {
	DeviceID string `json:"-"`
	Name     string `json:"name"`
	PIN      string `json:"pin"`
	Kiosk    bool   `json:"kiosk"`
}

// ChangePinRequest is the input of the PIN change operation.
type ChangePinRequest struct {
	OldPIN string `json:"old_pin"`
	NewPIN string `json:"new_pin"`
}

// SuspendRequest carries the reason of an administrative suspension.
type SuspendRequest struct {
	Reason string `json:"reason"`
}
