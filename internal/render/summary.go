package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/numbercruncher/internal/cleaner"
	"github.com/Veraticus/numbercruncher/internal/model"
)

// Summary writes the integrity stats and validation report for a load.
func Summary(w io.Writer, stats cleaner.Stats, s cleaner.Summary) error {
	kv := [][]string{
		{"Rows", strconv.Itoa(stats.RowCount)},
		{"Columns", strconv.Itoa(stats.ColumnCount)},
		{"Fingerprint", stats.Fingerprint},
		{"Dropped (empty)", strconv.Itoa(stats.DroppedEmpty)},
		{"Dropped (repeated header)", strconv.Itoa(stats.DroppedHeader)},
		{"Dropped (no measures)", strconv.Itoa(stats.DroppedNoMeasure)},
		{"Unique categories", strconv.Itoa(s.UniqueCategories)},
		{"Unique item keys", strconv.Itoa(s.UniqueItemKeys)},
		{"Unique names", strconv.Itoa(s.UniqueNames)},
		{"Total income", Money(s.TotalIncome)},
	}

	if err := writeTable(w, []string{"Metric", "Value"}, kv, 1); err != nil {
		return err
	}

	var missing [][]string
	for _, mc := range s.Missing {
		if mc.Count > 0 {
			missing = append(missing, []string{mc.Column.String(), strconv.Itoa(mc.Count)})
		}
	}
	if len(missing) == 0 {
		_, err := fmt.Fprintln(w, FormatSuccess("No missing values"))
		return err
	}
	return writeTable(w, []string{"Column", "Missing"}, missing, 1)
}

// Records writes records using the given canonical column names.
func Records(w io.Writer, records []model.Record, columns []string) error {
	cols := make([]model.Column, 0, len(columns))
	for _, name := range columns {
		for _, c := range model.Columns() {
			if c.String() == name {
				cols = append(cols, c)
			}
		}
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.String()
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		rec := &records[i]
		row := make([]string, len(cols))
		for j, c := range cols {
			if !c.IsMeasure() {
				row[j] = rec.Text(c)
				continue
			}
			if m := rec.Measure(c); m.Valid {
				row[j] = Number(m.Decimal)
			}
		}
		rows = append(rows, row)
	}

	firstNumeric := len(cols)
	for i, c := range cols {
		if c.IsMeasure() {
			firstNumeric = i
			break
		}
	}
	return writeTable(w, headers, rows, firstNumeric)
}

// writeTable renders a bordered table; columns from numericFrom onward are
// right-aligned.
func writeTable(w io.Writer, headers []string, rows [][]string, numericFrom int) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case col >= numericFrom:
				return NumberStyle
			default:
				return CellStyle
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
