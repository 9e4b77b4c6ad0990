package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// dialects maps a storage driver name to its goose dialect and the embedded
// directory holding its migrations.
var dialects = map[string]struct {
	dialect string
	dir     string
}{
	"postgres": {dialect: "pgx", dir: "postgres"},
	"sqlite":   {dialect: "sqlite3", dir: "sqlite"},
}

// Migrate applies every pending migration for driver ("postgres" or
// "sqlite").
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(d.dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
