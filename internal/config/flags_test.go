package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-d", "file:kiosk.db",
		"-db-driver", "sqlite",
		"-state-file", "state.json",
		"-config", "cfg.json",
		"-token-sign-key", "secret",
		"-token-issuer", "issuer",
		"-reset-pin", "4821",
		"-request-timeout", "5s",
		"-expiry-poll-interval", "15s",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "file:kiosk.db", cfg.Storage.DB.DSN)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "state.json", cfg.Storage.StateFile)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "4821", cfg.App.ResetPIN)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.Workers.ExpiryPollInterval)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-nope"})
	require.Error(t, err)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8080", want: "localhost:8080"},
		{name: "ipv4", input: "10.0.0.1:443", want: "10.0.0.1:443"},
		{name: "any host", input: ":8080", want: ":8080"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:http", wantErr: true},
		{name: "port out of range", input: "localhost:70000", wantErr: true},
		{name: "bad ip", input: "example.com:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestNetAddress_StringEmpty(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
}
