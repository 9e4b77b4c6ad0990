// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server constraints before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if !isDigits(cfg.App.ResetPIN, 4) {
		return fmt.Errorf("%w: reset PIN must be 4 digits", ErrInvalidAppConfigs)
	}
	if cfg.App.HashConcurrency < 0 {
		return fmt.Errorf("%w: hash concurrency must not be negative", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case "", DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.RateLimit <= 0 || cfg.Server.RateBurst <= 0 {
		return fmt.Errorf("%w: rate limit and burst must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Workers.ExpiryPollInterval <= 0 || cfg.Workers.PruneInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.DeviceID == "" {
		return fmt.Errorf("%w: device id is required", ErrInvalidAdapterConfigs)
	}

	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
