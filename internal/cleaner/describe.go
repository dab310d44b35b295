package cleaner

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/numbercruncher/internal/model"
)

// ColumnCount pairs a column with a count.
type ColumnCount struct {
	Column model.Column
	Count  int
}

// Summary is the validation report printed after a load.
type Summary struct {
	TotalIncome      decimal.Decimal
	Missing          []ColumnCount
	Records          int
	UniqueCategories int
	UniqueItemKeys   int
	UniqueNames      int
}

// Describe computes distinct counts, total income and per-column missing
// counts. Empty text values are not counted as distinct values.
func Describe(records []model.Record) Summary {
	categories := make(map[string]struct{})
	itemKeys := make(map[string]struct{})
	names := make(map[string]struct{})
	missing := make([]int, model.NumColumns)
	total := decimal.Zero

	for i := range records {
		rec := &records[i]
		if rec.Category != "" {
			categories[rec.Category] = struct{}{}
		}
		if rec.ItemKey != "" {
			itemKeys[rec.ItemKey] = struct{}{}
		}
		if rec.Name != "" {
			names[rec.Name] = struct{}{}
		}
		for _, c := range model.Columns() {
			if !rec.IsPresent(c) {
				missing[c]++
			}
		}
		total = total.Add(rec.IncomeOrZero())
	}

	counts := make([]ColumnCount, 0, model.NumColumns)
	for _, c := range model.Columns() {
		counts = append(counts, ColumnCount{Column: c, Count: missing[c]})
	}

	return Summary{
		Records:          len(records),
		UniqueCategories: len(categories),
		UniqueItemKeys:   len(itemKeys),
		UniqueNames:      len(names),
		TotalIncome:      total,
		Missing:          counts,
	}
}
