// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── build ────────────────────────────────────────────────────────────────────

func TestBuild_DefaultsFillUnsetFields(t *testing.T) {
	cfg, err := newConfigBuilder().
		withFlags([]string{"-token-sign-key", "secret"}).
		withDefaults().
		build()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "kiosk-gate", cfg.App.TokenIssuer)
	assert.Equal(t, "0000", cfg.App.ResetPIN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Workers.ExpiryPollInterval)
	assert.Equal(t, time.Hour, cfg.Workers.PruneInterval)
	assert.Empty(t, cfg.Storage.DB.Driver)
}

func TestBuild_EnvWinsOverFlags(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "from-env")
	t.Setenv("SERVER_ADDRESS", "localhost:7000")

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags([]string{"-token-sign-key", "from-flag", "-a", "localhost:9000", "-reset-pin", "2468"}).
		withDefaults().
		build()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.App.TokenSignKey)
	assert.Equal(t, "localhost:7000", cfg.Server.HTTPAddress)
	assert.Equal(t, "2468", cfg.App.ResetPIN)
}

func TestBuild_JSONPathFromFlags(t *testing.T) {
	path := writeJSONFile(t, `{"app": {"token_sign_key": "json-key"}, "server": {"rate_burst": 42}}`)

	cfg, err := newConfigBuilder().
		withFlags([]string{"-c", path}).
		withJSON().
		withDefaults().
		build()
	require.NoError(t, err)

	assert.Equal(t, "json-key", cfg.App.TokenSignKey)
	assert.Equal(t, 42, cfg.Server.RateBurst)
	assert.Equal(t, path, cfg.JSONFilePath)
}

func TestBuild_PropagatesSourceErrors(t *testing.T) {
	_, err := newConfigBuilder().
		withFlags([]string{"-unknown"}).
		withDefaults().
		build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error occurred during building config")
}

func TestBuild_MissingJSONFile(t *testing.T) {
	_, err := newConfigBuilder().
		withFlags([]string{"-config", "/definitely/not/here.json", "-token-sign-key", "k"}).
		withJSON().
		withDefaults().
		build()
	require.Error(t, err)
}

func TestBuild_InfersDriverFromDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "postgres://u:p@localhost/db", want: DriverPostgres},
		{dsn: "postgresql://u:p@localhost/db", want: DriverPostgres},
		{dsn: "file:kiosk.db", want: DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			cfg, err := newConfigBuilder().
				withFlags([]string{"-token-sign-key", "k", "-d", tt.dsn}).
				withDefaults().
				build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Storage.DB.Driver)
		})
	}
}

// ── validate ─────────────────────────────────────────────────────────────────

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "missing sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "short reset pin", mutate: func(cfg *StructuredConfig) { cfg.App.ResetPIN = "123" }, wantErr: ErrInvalidAppConfigs},
		{name: "non-digit reset pin", mutate: func(cfg *StructuredConfig) { cfg.App.ResetPIN = "12a4" }, wantErr: ErrInvalidAppConfigs},
		{name: "negative concurrency", mutate: func(cfg *StructuredConfig) { cfg.App.HashConcurrency = -1 }, wantErr: ErrInvalidAppConfigs},
		{name: "unknown driver", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no address", mutate: func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "zero timeout", mutate: func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = 0 }, wantErr: ErrInvalidServerConfigs},
		{name: "zero rate", mutate: func(cfg *StructuredConfig) { cfg.Server.RateLimit = 0 }, wantErr: ErrInvalidServerConfigs},
		{name: "zero poll", mutate: func(cfg *StructuredConfig) { cfg.Workers.ExpiryPollInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── client ───────────────────────────────────────────────────────────────────

func TestGetClientConfig_FlagsAndRemainingArgs(t *testing.T) {
	cfg, rest, err := GetClientConfig([]string{"-server", "http://kiosk:8080", "-device", "lobby", "login", "Maria"})
	require.NoError(t, err)

	assert.Equal(t, "http://kiosk:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "lobby", cfg.Adapter.DeviceID)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, []string{"login", "Maria"}, rest)
}

func TestGetClientConfig_EnvDeviceID(t *testing.T) {
	t.Setenv("ADAPTER_DEVICE_ID", "front-desk")

	cfg, _, err := GetClientConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "front-desk", cfg.Adapter.DeviceID)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
}

func TestGetClientConfig_MissingDevice(t *testing.T) {
	t.Setenv("ADAPTER_DEVICE_ID", "")

	_, _, err := GetClientConfig([]string{"status"})
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}
