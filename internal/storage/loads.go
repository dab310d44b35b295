package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/numbercruncher/internal/common"
)

// LoadEntry is one recorded file load.
type LoadEntry struct {
	LoadedAt         time.Time
	Path             string
	Fingerprint      string
	ID               int64
	Year             int
	Rows             int
	Columns          int
	DroppedEmpty     int
	DroppedHeader    int
	DroppedNoMeasure int
}

// Dropped returns the total number of rows the cleaner discarded.
func (e LoadEntry) Dropped() int {
	return e.DroppedEmpty + e.DroppedHeader + e.DroppedNoMeasure
}

const loadColumns = `id, path, year, fingerprint, row_count, column_count,
	dropped_empty, dropped_header, dropped_no_measure, loaded_at`

// RecordLoad appends a load to the ledger and fills in its ID and timestamp.
func (l *Ledger) RecordLoad(ctx context.Context, e *LoadEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLoad(e); err != nil {
		return err
	}

	if e.LoadedAt.IsZero() {
		e.LoadedAt = time.Now().UTC()
	}

	res, err := l.db.ExecContext(ctx, `
		INSERT INTO loads (path, year, fingerprint, row_count, column_count,
			dropped_empty, dropped_header, dropped_no_measure, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Path, e.Year, e.Fingerprint, e.Rows, e.Columns,
		e.DroppedEmpty, e.DroppedHeader, e.DroppedNoMeasure, e.LoadedAt)
	if err != nil {
		return fmt.Errorf("failed to record load: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get load id: %w", err)
	}
	e.ID = id
	return nil
}

// LastLoad returns the most recent load of path.
func (l *Ledger) LastLoad(ctx context.Context, path string) (*LoadEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	row := l.db.QueryRowContext(ctx,
		`SELECT `+loadColumns+` FROM loads WHERE path = ? ORDER BY id DESC LIMIT 1`, path)

	e, err := scanLoad(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no load recorded for %s", common.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last load: %w", err)
	}
	return e, nil
}

// Changed reports whether fingerprint differs from the last recorded load of
// path. A path that was never loaded counts as changed.
func (l *Ledger) Changed(ctx context.Context, path, fingerprint string) (bool, error) {
	last, err := l.LastLoad(ctx, path)
	if errors.Is(err, common.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return last.Fingerprint != fingerprint, nil
}

// ListLoads returns up to limit loads, newest first. A non-positive limit
// returns every load.
func (l *Ledger) ListLoads(ctx context.Context, limit int) ([]LoadEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT `+loadColumns+` FROM loads ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query loads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []LoadEntry
	for rows.Next() {
		e, scanErr := scanLoad(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan load: %w", scanErr)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loads: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLoad(s scanner) (*LoadEntry, error) {
	var e LoadEntry
	if err := s.Scan(&e.ID, &e.Path, &e.Year, &e.Fingerprint, &e.Rows, &e.Columns,
		&e.DroppedEmpty, &e.DroppedHeader, &e.DroppedNoMeasure, &e.LoadedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
