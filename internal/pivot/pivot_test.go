package pivot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/numbercruncher/internal/model"
)

func row(category string, year int, income int64) model.AggregateRow {
	return model.AggregateRow{Category: category, Year: year, Income: decimal.NewFromInt(income)}
}

func assertDense(t *testing.T, p model.PivotTable) {
	t.Helper()
	assert.Len(t, p.Cells, len(p.RowKeys)*len(p.ColumnKeys))
	for _, r := range p.RowKeys {
		for _, c := range p.ColumnKeys {
			_, ok := p.Cells[model.CellKey{Row: r, Column: c}]
			assert.True(t, ok, "missing cell %s/%s", r, c)
		}
	}
}

func TestBuild_ByCategoryScenario(t *testing.T) {
	rows := []model.AggregateRow{row("Tent", 2024, 1500), row("Audio", 2024, 2000)}

	p := Build(rows, model.ByCategory)
	assert.Equal(t, "Category", p.RowAxis())
	assert.Equal(t, []string{"Audio", "Tent"}, p.RowKeys)
	assert.Equal(t, []string{"2024"}, p.ColumnKeys)
	assert.True(t, p.Cell("Audio", "2024").Equal(decimal.NewFromInt(2000)))
	assert.True(t, p.Cell("Tent", "2024").Equal(decimal.NewFromInt(1500)))
	assertDense(t, p)
}

func TestBuild_ByCategorySortsByTotalAcrossYears(t *testing.T) {
	rows := []model.AggregateRow{
		row("Tent", 2023, 100),
		row("Audio", 2024, 250),
		row("Tent", 2024, 200),
		row("Lavatory", 2022, 50),
		row("Chairs", 2024, 300),
	}

	p := Build(rows, model.ByCategory)
	// Tent 300 and Chairs 300 tie: Tent was seen first.
	assert.Equal(t, []string{"Tent", "Chairs", "Audio", "Lavatory"}, p.RowKeys)
	assert.Equal(t, []string{"2022", "2023", "2024"}, p.ColumnKeys)
	assert.True(t, p.Cell("Lavatory", "2024").IsZero())
	assert.True(t, p.Cell("Tent", "2023").Equal(decimal.NewFromInt(100)))
	assertDense(t, p)
}

func TestBuild_ByYear(t *testing.T) {
	rows := []model.AggregateRow{
		row("Tent", 2024, 10),
		row("Audio", 2022, 20),
		row("Tent", 2022, 30),
		row("Chairs", 2023, 40),
	}

	p := Build(rows, model.ByYear)
	assert.Equal(t, "Year", p.RowAxis())
	assert.Equal(t, []string{"2022", "2023", "2024"}, p.RowKeys)
	assert.Equal(t, []string{"Tent", "Audio", "Chairs"}, p.ColumnKeys)
	assert.True(t, p.Cell("2022", "Tent").Equal(decimal.NewFromInt(30)))
	assert.True(t, p.Cell("2024", "Audio").IsZero())
	assertDense(t, p)

	again := Build(rows, model.ByYear)
	assert.Equal(t, p.ColumnKeys, again.ColumnKeys, "column order is stable")
}

func TestBuild_ConservesTotal(t *testing.T) {
	rows := []model.AggregateRow{
		row("Tent", 2024, 10),
		row("Audio", 2022, -5),
		row("Tent", 2022, 30),
	}
	for _, o := range []model.Orientation{model.ByYear, model.ByCategory} {
		p := Build(rows, o)
		assert.True(t, p.Total().Equal(decimal.NewFromInt(35)), string(o))
	}
}

func TestBuild_Empty(t *testing.T) {
	for _, o := range []model.Orientation{model.ByYear, model.ByCategory} {
		p := Build(nil, o)
		assert.True(t, p.Empty())
		assert.Empty(t, p.RowKeys)
		assert.Empty(t, p.ColumnKeys)
		require.NotNil(t, p.Cells)
		assert.Empty(t, p.Cells)
		assert.True(t, p.Total().IsZero())
	}
}

func TestBuild_UnknownOrientationFallsBackToCategory(t *testing.T) {
	p := Build([]model.AggregateRow{row("Tent", 2024, 1)}, "")
	assert.Equal(t, model.ByCategory, p.Orientation)
	assert.Equal(t, []string{"Tent"}, p.RowKeys)
}
