// Package model defines the canonical data shapes shared by the cleaning,
// classification and aggregation stages.
package model

import "github.com/shopspring/decimal"

// Column identifies one canonical field of a Record.
type Column int

// Canonical columns, in the order they appear in exported files.
const (
	ColCategory Column = iota
	ColItemKey
	ColName
	ColQuantity
	ColPurchaseCost
	ColHours
	ColTimesOut
	ColIncome
	ColROI
	ColAvgYearlyROI
	ColSubrental
	ColRepair

	NumColumns = int(ColRepair) + 1
)

var columnNames = [NumColumns]string{
	"Category",
	"Item Key",
	"Name",
	"Qty",
	"Purchase Costs",
	"Hours",
	"Times Out",
	"Income",
	"ROI",
	"Avg Yearly ROI",
	"Subrental",
	"Repair",
}

// String returns the canonical header text for the column.
func (c Column) String() string {
	if c < 0 || int(c) >= NumColumns {
		return "Unknown"
	}
	return columnNames[c]
}

// IsMeasure reports whether the column holds a numeric measure.
func (c Column) IsMeasure() bool {
	return c >= ColQuantity && int(c) < NumColumns
}

// Columns returns every canonical column in order.
func Columns() []Column {
	cols := make([]Column, NumColumns)
	for i := range cols {
		cols[i] = Column(i)
	}
	return cols
}

// MeasureColumns returns the numeric columns in canonical order.
func MeasureColumns() []Column {
	return Columns()[ColQuantity:]
}

// YearColumn is the header used when a year is written alongside records.
const YearColumn = "Year"

// Record is one cleaned transaction line.
// Measure fields are invalid (missing) when the source cell was empty or
// could not be parsed.
type Record struct {
	Category     string
	ItemKey      string
	Name         string
	Quantity     decimal.NullDecimal
	PurchaseCost decimal.NullDecimal
	Hours        decimal.NullDecimal
	TimesOut     decimal.NullDecimal
	Income       decimal.NullDecimal
	ROI          decimal.NullDecimal
	AvgYearlyROI decimal.NullDecimal
	Subrental    decimal.NullDecimal
	Repair       decimal.NullDecimal
	Year         int
}

// Text returns the value of a text column, or "" for measure columns.
func (r *Record) Text(c Column) string {
	switch c {
	case ColCategory:
		return r.Category
	case ColItemKey:
		return r.ItemKey
	case ColName:
		return r.Name
	}
	return ""
}

// SetText assigns a text column. Measure columns are ignored.
func (r *Record) SetText(c Column, v string) {
	switch c {
	case ColCategory:
		r.Category = v
	case ColItemKey:
		r.ItemKey = v
	case ColName:
		r.Name = v
	}
}

// Measure returns a pointer to the measure field for c, or nil for text columns.
func (r *Record) Measure(c Column) *decimal.NullDecimal {
	switch c {
	case ColQuantity:
		return &r.Quantity
	case ColPurchaseCost:
		return &r.PurchaseCost
	case ColHours:
		return &r.Hours
	case ColTimesOut:
		return &r.TimesOut
	case ColIncome:
		return &r.Income
	case ColROI:
		return &r.ROI
	case ColAvgYearlyROI:
		return &r.AvgYearlyROI
	case ColSubrental:
		return &r.Subrental
	case ColRepair:
		return &r.Repair
	}
	return nil
}

// HasMeasure reports whether at least one measure field is present.
func (r *Record) HasMeasure() bool {
	for _, c := range MeasureColumns() {
		if r.Measure(c).Valid {
			return true
		}
	}
	return false
}

// IsPresent reports whether column c carries a value.
func (r *Record) IsPresent(c Column) bool {
	if c.IsMeasure() {
		return r.Measure(c).Valid
	}
	return r.Text(c) != ""
}

// IncomeOrZero returns the income, treating missing as zero.
func (r *Record) IncomeOrZero() decimal.Decimal {
	if !r.Income.Valid {
		return decimal.Zero
	}
	return r.Income.Decimal
}
