// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the kiosk-gate HTTP API.
//
// [ServerAdapter] hides the transport from callers such as kioskctl. Every
// request carries the configured device ID; authenticated requests also carry
// the bearer token obtained from the last successful signup or login.
//
// Non-2xx responses are returned as [*RequestError], which unwraps to one of
// the sentinels in errors.go so that callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/kiosk-gate/models"
)

// ServerAdapter defines communication with the kiosk-gate server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if there is none.
	Token() string

	// Signup creates a profile and stores the token of the session that was
	// opened for it.
	Signup(ctx context.Context, req models.SignupRequest) (models.OperationResult, error)

	// Login opens a session for a profile picked by ID and stores its token.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthSession, error)

	// LoginByName is Login for a profile named in any letter case.
	LoginByName(ctx context.Context, req models.LoginByNameRequest) (models.AuthSession, error)

	// Logout ends the session of this device and forgets the token.
	Logout(ctx context.Context) error

	// Session polls the session slot of this device.
	Session(ctx context.Context) (models.SessionStatus, error)

	// ChangePin replaces the PIN of the logged-in profile.
	ChangePin(ctx context.Context, req models.ChangePinRequest) error

	// Profiles lists the profiles shown by the kiosk picker.
	Profiles(ctx context.Context) ([]models.UserProfile, error)

	ResetPin(ctx context.Context, profileID string) error
	Suspend(ctx context.Context, profileID, reason string) error
	Unsuspend(ctx context.Context, profileID string) error

	// Audit returns up to limit of the newest audit entries.
	Audit(ctx context.Context, limit int) ([]models.AuditEntry, error)

	// Version returns the server build version.
	Version(ctx context.Context) (string, error)
}
