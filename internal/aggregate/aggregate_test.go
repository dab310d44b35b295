package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/numbercruncher/internal/model"
)

func rec(category string, year int, income string) model.Record {
	r := model.Record{Category: category, Year: year}
	if income != "" {
		r.Income = decimal.NewNullDecimal(decimal.RequireFromString(income))
	}
	return r
}

func TestAggregate(t *testing.T) {
	records := []model.Record{
		rec("Tent", 2024, "1000"),
		rec("Audio", 2024, "2000"),
		rec("Tent", 2024, "500"),
		rec("Tent", 2023, "300"),
		rec("Audio", 2022, "9999"),
		rec("Chairs", 2024, ""),
	}

	rows := Aggregate(records, NewYearSet(2023, 2024))
	require.Len(t, rows, 4)

	want := []struct {
		category string
		year     int
		income   string
	}{
		{"Tent", 2024, "1500"},
		{"Audio", 2024, "2000"},
		{"Tent", 2023, "300"},
		{"Chairs", 2024, "0"},
	}
	for i, w := range want {
		assert.Equal(t, w.category, rows[i].Category)
		assert.Equal(t, w.year, rows[i].Year)
		assert.True(t, rows[i].Income.Equal(decimal.RequireFromString(w.income)),
			"%s/%d: got %s", w.category, w.year, rows[i].Income)
	}

	assert.True(t, Total(rows).Equal(decimal.NewFromInt(3800)))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, NewYearSet(2024)))
	assert.Empty(t, Aggregate([]model.Record{rec("Tent", 2024, "1")}, NewYearSet()))
	assert.True(t, Total(nil).IsZero())
}

func TestAggregate_DecimalExactness(t *testing.T) {
	records := make([]model.Record, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, rec("Linen", 2024, "0.1"))
	}
	rows := Aggregate(records, NewYearSet(2024))
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].Income.String())
}

func TestYearSet(t *testing.T) {
	s := NewYearSet(2024, 2022, 2023, 2024)
	assert.Equal(t, []int{2022, 2023, 2024}, s.Sorted())
	assert.True(t, s.Contains(2023))
	assert.False(t, s.Contains(2021))

	years := YearsOf([]model.Record{rec("a", 2021, "1"), rec("b", 2019, "1"), rec("c", 2021, "1")})
	assert.Equal(t, []int{2019, 2021}, years.Sorted())
	assert.Empty(t, YearSet(nil).Sorted())
}
