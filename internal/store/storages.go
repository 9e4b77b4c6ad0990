package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
)

const (
	// AuditRetention bounds the audit trail kept by a backend.
	AuditRetention = 1000
	// AuditSnapshotRetention bounds the audit trail written to the state
	// file.
	AuditSnapshotRetention = 200
)

// NewStorages opens the storage backend selected by cfg:
//   - DB.DSN set: the SQL backend for DB.Driver, with migrations applied;
//   - otherwise the state file at StateFile, or a memory-only store when
//     StateFile is empty.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (Storage, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	if cfg.DB.DSN == "" {
		st, err := NewStateStore(cfg.StateFile, logger)
		if err != nil {
			return nil, fmt.Errorf("state store error: %w", err)
		}
		return st, nil
	}

	var (
		db  *DB
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLStore(db), nil
}
