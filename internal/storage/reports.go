package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportEntry is one recorded report run.
type ReportEntry struct {
	CreatedAt   time.Time
	Total       decimal.Decimal
	RunID       string
	Title       string
	Orientation string
	Years       string
	Fingerprint string
	ID          int64
	Records     int
}

// RecordReport appends a report run to the ledger. A missing RunID is
// generated.
func (l *Ledger) RecordReport(ctx context.Context, e *ReportEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReport(e); err != nil {
		return err
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}

	res, err := l.db.ExecContext(ctx, `
		INSERT INTO reports (run_id, title, orientation, years, record_count, total, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Title, e.Orientation, e.Years, e.Records, e.Total.String(), e.Fingerprint, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get report id: %w", err)
	}
	e.ID = id
	return nil
}

// ListReports returns up to limit report runs, newest first.
func (l *Ledger) ListReports(ctx context.Context, limit int) ([]ReportEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, run_id, title, orientation, years, record_count, total, fingerprint, created_at
		FROM reports ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ReportEntry
	for rows.Next() {
		var (
			e     ReportEntry
			total string
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.Title, &e.Orientation, &e.Years, &e.Records,
			&total, &e.Fingerprint, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if e.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("report %d has invalid total %q: %w", e.ID, total, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return out, nil
}
