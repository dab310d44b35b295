package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AggregateRow is the summed income of one (category, year) pair.
type AggregateRow struct {
	Category string
	Income   decimal.Decimal
	Year     int
}

// Orientation selects which dimension runs down the rows of a pivot.
type Orientation string

const (
	// ByYear puts years on rows and categories on columns.
	ByYear Orientation = "by-year"
	// ByCategory puts categories on rows and years on columns.
	ByCategory Orientation = "by-category"
)

// ParseOrientation accepts "by-year"/"by-category" and the underscore or
// bare forms ("year", "category").
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "by-year", "by_year", "year":
		return ByYear, nil
	case "by-category", "by_category", "category":
		return ByCategory, nil
	}
	return "", fmt.Errorf("unknown orientation %q (want by-year or by-category)", s)
}

// RowAxis returns the name of the dimension on the rows.
func (o Orientation) RowAxis() string {
	if o == ByYear {
		return "Year"
	}
	return "Category"
}

// ColumnAxis returns the name of the dimension on the columns.
func (o Orientation) ColumnAxis() string {
	if o == ByYear {
		return "Category"
	}
	return "Year"
}

// Title returns the semantic label of the orientation.
func (o Orientation) Title() string {
	if o == ByYear {
		return "Income by year"
	}
	return "Income by category"
}

// CellKey addresses one pivot cell.
type CellKey struct {
	Row    string
	Column string
}

// PivotTable is a dense two-dimensional income table.
// Year keys are rendered as decimal strings.
type PivotTable struct {
	Cells       map[CellKey]decimal.Decimal
	Orientation Orientation
	RowKeys     []string
	ColumnKeys  []string
}

// RowAxis returns "Year" or "Category".
func (p PivotTable) RowAxis() string {
	return p.Orientation.RowAxis()
}

// Empty reports whether the table has no rows or no columns.
func (p PivotTable) Empty() bool {
	return len(p.RowKeys) == 0 || len(p.ColumnKeys) == 0
}

// Cell returns the value at (row, col). Absent keys read as zero.
func (p PivotTable) Cell(row, col string) decimal.Decimal {
	return p.Cells[CellKey{Row: row, Column: col}]
}

// RowTotal sums one row across every column.
func (p PivotTable) RowTotal(row string) decimal.Decimal {
	total := decimal.Zero
	for _, col := range p.ColumnKeys {
		total = total.Add(p.Cell(row, col))
	}
	return total
}

// ColumnTotal sums one column across every row.
func (p PivotTable) ColumnTotal(col string) decimal.Decimal {
	total := decimal.Zero
	for _, row := range p.RowKeys {
		total = total.Add(p.Cell(row, col))
	}
	return total
}

// Total sums every cell.
func (p PivotTable) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range p.Cells {
		total = total.Add(v)
	}
	return total
}
