// Package aggregate sums income over (category, year) pairs.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/numbercruncher/internal/model"
)

// YearSet is the set of years retained before aggregation.
type YearSet map[int]struct{}

// NewYearSet builds a set from the given years.
func NewYearSet(years ...int) YearSet {
	s := make(YearSet, len(years))
	for _, y := range years {
		s[y] = struct{}{}
	}
	return s
}

// YearsOf returns the set of years present in records.
func YearsOf(records []model.Record) YearSet {
	s := make(YearSet)
	for i := range records {
		s[records[i].Year] = struct{}{}
	}
	return s
}

// Contains reports whether year is selected.
func (s YearSet) Contains(year int) bool {
	_, ok := s[year]
	return ok
}

// Sorted returns the years in ascending order.
func (s YearSet) Sorted() []int {
	years := make([]int, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

type pairKey struct {
	category string
	year     int
}

// Aggregate keeps records whose year is selected and sums income per
// (category, year). Missing income counts as zero but the record still
// forms its group. Rows come out in first-encounter order; pairs with no
// records do not appear.
func Aggregate(records []model.Record, years YearSet) []model.AggregateRow {
	index := make(map[pairKey]int)
	var rows []model.AggregateRow

	for i := range records {
		rec := &records[i]
		if !years.Contains(rec.Year) {
			continue
		}
		key := pairKey{category: rec.Category, year: rec.Year}
		pos, ok := index[key]
		if !ok {
			pos = len(rows)
			index[key] = pos
			rows = append(rows, model.AggregateRow{
				Category: rec.Category,
				Year:     rec.Year,
				Income:   decimal.Zero,
			})
		}
		rows[pos].Income = rows[pos].Income.Add(rec.IncomeOrZero())
	}

	return rows
}

// Total sums the income of aggregate rows.
func Total(rows []model.AggregateRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Income)
	}
	return total
}
