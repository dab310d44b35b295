// Package pivot reshapes aggregate rows into a dense two-dimensional table.
package pivot

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/numbercruncher/internal/model"
)

// Build reshapes aggregate rows into a PivotTable. Every cell of the
// row x column cross-product is present; missing pairs are zero.
//
// By year: rows are years ascending, columns are categories in first
// encounter order. By category: rows are categories sorted by total income
// descending (ties keep encounter order), columns are years ascending.
func Build(rows []model.AggregateRow, orientation model.Orientation) model.PivotTable {
	var (
		categories   []string
		seenCategory = make(map[string]struct{})
		years        []int
		seenYear     = make(map[int]struct{})
		categorySum  = make(map[string]decimal.Decimal)
	)

	for _, r := range rows {
		if _, ok := seenCategory[r.Category]; !ok {
			seenCategory[r.Category] = struct{}{}
			categories = append(categories, r.Category)
		}
		if _, ok := seenYear[r.Year]; !ok {
			seenYear[r.Year] = struct{}{}
			years = append(years, r.Year)
		}
		categorySum[r.Category] = categorySum[r.Category].Add(r.Income)
	}
	sort.Ints(years)

	yearKeys := make([]string, len(years))
	for i, y := range years {
		yearKeys[i] = strconv.Itoa(y)
	}

	table := model.PivotTable{
		Orientation: orientation,
		Cells:       make(map[model.CellKey]decimal.Decimal, len(categories)*len(years)),
	}

	if orientation == model.ByYear {
		table.RowKeys = yearKeys
		table.ColumnKeys = categories
	} else {
		table.Orientation = model.ByCategory
		sort.SliceStable(categories, func(i, j int) bool {
			return categorySum[categories[i]].GreaterThan(categorySum[categories[j]])
		})
		table.RowKeys = categories
		table.ColumnKeys = yearKeys
	}

	for _, row := range table.RowKeys {
		for _, col := range table.ColumnKeys {
			table.Cells[model.CellKey{Row: row, Column: col}] = decimal.Zero
		}
	}
	for _, r := range rows {
		key := cellKey(table.Orientation, r)
		table.Cells[key] = table.Cells[key].Add(r.Income)
	}

	return table
}

func cellKey(o model.Orientation, r model.AggregateRow) model.CellKey {
	year := strconv.Itoa(r.Year)
	if o == model.ByYear {
		return model.CellKey{Row: year, Column: r.Category}
	}
	return model.CellKey{Row: r.Category, Column: year}
}
