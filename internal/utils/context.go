// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, HTTP client initialization, session token generation and
// validation, identifiers and time.
package utils

import (
	"context"

	"github.com/MKhiriev/kiosk-gate/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// DeviceIDCtxKey is the key under which the calling device's identifier
	// is stored.
	DeviceIDCtxKey = contextKey("deviceID")

	// SessionCtxKey is the key under which the authenticated
	// [models.AuthSession] is stored.
	SessionCtxKey = contextKey("session")
)

// WithDeviceID returns a copy of ctx carrying deviceID.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, DeviceIDCtxKey, deviceID)
}

// GetDeviceIDFromContext retrieves the device identifier from the context.
// ok is false when it is missing, empty or of an unexpected type.
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok && deviceID != ""
}

// WithSession returns a copy of ctx carrying the authenticated session.
func WithSession(ctx context.Context, session models.AuthSession) context.Context {
	return context.WithValue(ctx, SessionCtxKey, session)
}

// GetSessionFromContext retrieves the authenticated session from the
// context.
//
//	session, ok := utils.GetSessionFromContext(ctx)
//	if !ok {
//	    // request did not pass the auth middleware
//	}
func GetSessionFromContext(ctx context.Context) (models.AuthSession, bool) {
	session, ok := ctx.Value(SessionCtxKey).(models.AuthSession)
	return session, ok
}
