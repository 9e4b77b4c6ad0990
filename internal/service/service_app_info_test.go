package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestNewAppInfoService_FallsBackToConfigVersion(t *testing.T) {
	build := models.NewAppBuildInfo("", "2026-05-01", "abc123")

	svc, err := NewAppInfoService(config.App{Version: "dev"}, build, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "dev", svc.GetAppVersion(context.Background()))
	info := svc.GetBuildInfo(context.Background())
	assert.Equal(t, "2026-05-01", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion_PrefersBuildVersion(t *testing.T) {
	build := models.NewAppBuildInfo("v1.2.3-beta+build.42", "", "")

	svc, err := NewAppInfoService(config.App{Version: "dev"}, build, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3-beta+build.42", svc.GetAppVersion(context.Background()))
	assert.Equal(t, "N/A", svc.GetBuildInfo(context.Background()).BuildCommit())
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}
