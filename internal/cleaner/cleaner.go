// Package cleaner turns raw delimited exports into canonical records.
//
// Source columns are addressed by position, not by header text: header
// names drift between yearly exports and some files repeat them. Only the
// columns named in the Layout are read; everything else is discarded.
package cleaner

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/model"
)

// utf8BOM is stripped from the header cell when rows are cleaned directly.
const utf8BOM = "\uFEFF"

// Stats describes a cleaned dataset.
type Stats struct {
	Fingerprint      string
	ColumnNames      []string
	RowCount         int
	ColumnCount      int
	DroppedEmpty     int
	DroppedHeader    int
	DroppedNoMeasure int
}

// Dropped returns the total number of discarded rows.
func (s Stats) Dropped() int {
	return s.DroppedEmpty + s.DroppedHeader + s.DroppedNoMeasure
}

// Dataset is the output of a clean: records plus integrity stats.
type Dataset struct {
	Records []model.Record
	Stats   Stats
}

// Load reads one delimited export. The first row is treated as the header.
// When the input cannot be decoded or parsed the returned Dataset is empty
// and the error wraps common.ErrLoadFailed.
func Load(r io.Reader, opts Options) (Dataset, error) {
	opts = opts.withDefaults()
	if err := opts.Layout.Validate(); err != nil {
		return Dataset{}, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: read: %w", common.ErrLoadFailed, err)
	}

	text, err := Decode(raw, opts.Encoding)
	if err != nil {
		return Dataset{}, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	// Inch marks in item names (12" Stake) stay literal text.
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return Dataset{}, fmt.Errorf("%w: line %d: %w", common.ErrLoadFailed, parseErr.Line, parseErr.Err)
		}
		return Dataset{}, fmt.Errorf("%w: %w", common.ErrLoadFailed, err)
	}
	if len(rows) == 0 {
		return Dataset{}, fmt.Errorf("%w: input has no header row", common.ErrLoadFailed)
	}

	return Clean(rows[0], rows[1:], opts), nil
}

// Clean maps raw rows into records, dropping rows that are empty, repeat the
// header, or carry no measure at all.
func Clean(header []string, rows [][]string, opts Options) Dataset {
	opts = opts.withDefaults()

	headerTokens := map[string]struct{}{opts.HeaderToken: {}}
	if pos, ok := opts.Layout[model.ColItemKey]; ok && pos < len(header) {
		if h := strings.TrimSpace(strings.TrimPrefix(header[pos], utf8BOM)); h != "" {
			headerTokens[h] = struct{}{}
		}
	}

	var (
		stats   Stats
		records = make([]model.Record, 0, len(rows))
	)

	for _, row := range rows {
		rec, empty := mapRow(row, opts.Layout)
		if empty {
			stats.DroppedEmpty++
			continue
		}
		if _, ok := headerTokens[rec.ItemKey]; ok {
			stats.DroppedHeader++
			continue
		}
		if !rec.HasMeasure() {
			stats.DroppedNoMeasure++
			continue
		}
		records = append(records, rec)
	}

	stats.ColumnNames = presentColumns(records)
	stats.ColumnCount = len(stats.ColumnNames)
	stats.RowCount = len(records)
	stats.Fingerprint = Fingerprint(records)

	slog.Debug("cleaned rows",
		"raw_rows", len(rows),
		"kept", stats.RowCount,
		"dropped_empty", stats.DroppedEmpty,
		"dropped_header", stats.DroppedHeader,
		"dropped_no_measure", stats.DroppedNoMeasure)

	return Dataset{Records: records, Stats: stats}
}

// mapRow reads the mapped cells of one raw row. empty is true when every
// mapped cell is blank or a missing token.
func mapRow(row []string, layout Layout) (model.Record, bool) {
	var rec model.Record
	empty := true

	for c, pos := range layout {
		if pos >= len(row) {
			continue
		}
		cell := row[pos]
		if !IsMissing(cell) {
			empty = false
		}
		if c.IsMeasure() {
			*rec.Measure(c) = ParseNumber(cell)
			continue
		}
		rec.SetText(c, cleanText(cell))
	}

	return rec, empty
}

// presentColumns lists canonical columns holding a value in at least one
// record; entirely empty columns are dropped.
func presentColumns(records []model.Record) []string {
	var names []string
	for _, c := range model.Columns() {
		for i := range records {
			if records[i].IsPresent(c) {
				names = append(names, c.String())
				break
			}
		}
	}
	return names
}
