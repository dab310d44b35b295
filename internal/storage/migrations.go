package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "File loads",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS loads (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					path TEXT NOT NULL,
					year INTEGER NOT NULL,
					fingerprint TEXT NOT NULL,
					row_count INTEGER NOT NULL DEFAULT 0,
					column_count INTEGER NOT NULL DEFAULT 0,
					dropped_empty INTEGER NOT NULL DEFAULT 0,
					dropped_header INTEGER NOT NULL DEFAULT 0,
					dropped_no_measure INTEGER NOT NULL DEFAULT 0,
					loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_loads_path ON loads(path)`,
				`CREATE INDEX idx_loads_fingerprint ON loads(fingerprint)`,
			}
			return execAll(tx, queries)
		},
	},
	{
		Version:     2,
		Description: "Report runs",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS reports (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					title TEXT NOT NULL,
					orientation TEXT NOT NULL,
					years TEXT NOT NULL DEFAULT '',
					record_count INTEGER NOT NULL DEFAULT 0,
					total TEXT NOT NULL DEFAULT '0',
					fingerprint TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_reports_created ON reports(created_at)`,
			}
			return execAll(tx, queries)
		},
	},
	{
		Version:     3,
		Description: "Report run IDs",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE reports ADD COLUMN run_id TEXT NOT NULL DEFAULT ''`,
				`CREATE INDEX idx_reports_run_id ON reports(run_id)`,
			}
			return execAll(tx, queries)
		},
	},
}

func execAll(tx *sql.Tx, queries []string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the database's current user_version.
func (l *Ledger) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := l.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (l *Ledger) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := l.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := l.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := l.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
