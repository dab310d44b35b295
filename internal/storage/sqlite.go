// Package storage keeps a local SQLite ledger of loaded exports and
// generated reports.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Ledger records every file load and report run.
type Ledger struct {
	db     *sql.DB
	dbPath string
}

// NewLedger opens (or creates) the ledger database at dbPath.
func NewLedger(dbPath string) (*Ledger, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps :memory: databases and WAL writers consistent.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Ledger{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path.
func (l *Ledger) Path() string {
	return l.dbPath
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Open creates a ledger and migrates it to the current schema.
func Open(ctx context.Context, dbPath string) (*Ledger, error) {
	l, err := NewLedger(dbPath)
	if err != nil {
		return nil, err
	}
	if err := l.Migrate(ctx); err != nil {
		_ = l.Close()
		return nil, err
	}
	return l, nil
}
