package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "deviceID", DeviceIDCtxKey.String())
	assert.Equal(t, "session", SessionCtxKey.String())
}

func TestDeviceIDContext(t *testing.T) {
	_, ok := GetDeviceIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetDeviceIDFromContext(WithDeviceID(context.Background(), ""))
	assert.False(t, ok, "empty id is treated as missing")

	id, ok := GetDeviceIDFromContext(WithDeviceID(context.Background(), "kiosk-1"))
	assert.True(t, ok)
	assert.Equal(t, "kiosk-1", id)

	ctx := context.WithValue(context.Background(), DeviceIDCtxKey, 42)
	_, ok = GetDeviceIDFromContext(ctx)
	assert.False(t, ok, "wrong type")
}

func TestSessionContext(t *testing.T) {
	_, ok := GetSessionFromContext(context.Background())
	assert.False(t, ok)

	want := models.AuthSession{ID: "s1", ProfileID: "p1", DeviceID: "kiosk-1"}
	got, ok := GetSessionFromContext(WithSession(context.Background(), want))
	assert.True(t, ok)
	assert.Equal(t, want, got)

	// a plain string key must not collide
	ctx := context.WithValue(context.Background(), "session", want) //nolint:staticcheck
	_, ok = GetSessionFromContext(ctx)
	assert.False(t, ok)
}
