// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// defaultConfig returns the values used for every field no other source set.
// TokenSignKey has no default and must be provided.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer: "kiosk-gate",
			ResetPIN:    "0000",
			Version:     "dev",
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			RateLimit:      5,
			RateBurst:      10,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Workers: Workers{
			ExpiryPollInterval: 30 * time.Second,
			PruneInterval:      time.Hour,
		},
	}
}

// inferDriver fills Storage.DB.Driver from the DSN scheme when it was not
// set explicitly.
func (cfg *StructuredConfig) inferDriver() {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.Driver != "" {
		return
	}

	dsn := strings.ToLower(cfg.Storage.DB.DSN)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		cfg.Storage.DB.Driver = DriverPostgres
		return
	}
	cfg.Storage.DB.Driver = DriverSQLite
}
