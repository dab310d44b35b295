// Package export writes cleaned records and pivot tables to files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/numbercruncher/internal/model"
)

// RecordHeader is the header row written by WriteRecordsCSV.
func RecordHeader() []string {
	header := make([]string, 0, model.NumColumns+1)
	for _, c := range model.Columns() {
		header = append(header, c.String())
	}
	return append(header, model.YearColumn)
}

// WriteRecordsCSV writes records in canonical column order followed by the
// year. Missing measures are written as empty cells, so the output cleans
// back to the same records under the default layout.
func WriteRecordsCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordHeader()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, model.NumColumns+1)
	for i := range records {
		rec := &records[i]
		for _, c := range model.Columns() {
			row[c] = cellText(rec, c)
		}
		row[model.NumColumns] = ""
		if rec.Year != 0 {
			row[model.NumColumns] = strconv.Itoa(rec.Year)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePivotCSV writes a pivot with a trailing total column and total row.
func WritePivotCSV(w io.Writer, table model.PivotTable) error {
	cw := csv.NewWriter(w)

	header := append([]string{table.RowAxis()}, table.ColumnKeys...)
	header = append(header, "Total")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range table.RowKeys {
		line := []string{row}
		for _, col := range table.ColumnKeys {
			line = append(line, table.Cell(row, col).StringFixed(2))
		}
		line = append(line, table.RowTotal(row).StringFixed(2))
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row, err)
		}
	}

	if !table.Empty() {
		totals := []string{"Total"}
		for _, col := range table.ColumnKeys {
			totals = append(totals, table.ColumnTotal(col).StringFixed(2))
		}
		totals = append(totals, table.Total().StringFixed(2))
		if err := cw.Write(totals); err != nil {
			return fmt.Errorf("failed to write totals: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func cellText(rec *model.Record, c model.Column) string {
	if !c.IsMeasure() {
		return rec.Text(c)
	}
	if m := rec.Measure(c); m.Valid {
		return m.Decimal.String()
	}
	return ""
}
