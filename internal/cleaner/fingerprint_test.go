package cleaner

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/numbercruncher/internal/model"
)

func TestFingerprint_Deterministic(t *testing.T) {
	input := csvText(
		line("Tent", "T-1", "Pole", "1", "1,000"),
		line("Audio", "A-1", "Mic", "2", "50"),
	)

	a, err := Load(strings.NewReader(input), DefaultOptions())
	require.NoError(t, err)
	b, err := Load(strings.NewReader(input), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Stats.Fingerprint, b.Stats.Fingerprint)
	assert.Equal(t, a.Stats.Fingerprint, Fingerprint(a.Records))
}

func TestFingerprint_ChangesWithAnyCell(t *testing.T) {
	base := []model.Record{{
		Category: "Tent",
		ItemKey:  "T-1",
		Name:     "Pole",
		Income:   decimal.NewNullDecimal(decimal.NewFromInt(10)),
		Year:     2024,
	}}
	fp := Fingerprint(base)

	mutations := map[string]func(r *model.Record){
		"category":     func(r *model.Record) { r.Category = "Tents" },
		"name":         func(r *model.Record) { r.Name = "Pole " },
		"income value": func(r *model.Record) { r.Income = decimal.NewNullDecimal(decimal.NewFromInt(11)) },
		"missing vs zero": func(r *model.Record) {
			r.Repair = decimal.NewNullDecimal(decimal.Zero)
		},
		"year": func(r *model.Record) { r.Year = 2023 },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			changed := make([]model.Record, len(base))
			copy(changed, base)
			mutate(&changed[0])
			assert.NotEqual(t, fp, Fingerprint(changed))
		})
	}
}

func TestFingerprint_FieldBoundaries(t *testing.T) {
	a := []model.Record{{Category: "ab", ItemKey: "c"}}
	b := []model.Record{{Category: "a", ItemKey: "bc"}}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestShortFingerprint(t *testing.T) {
	assert.Equal(t, "0123abcd", ShortFingerprint("0123abcdef456789"))
	assert.Equal(t, "abc", ShortFingerprint("abc"))
}

func TestDescribe(t *testing.T) {
	input := csvText(
		line("Tent", "T-1", "Pole", "1", "1,000"),
		line("Tent", "T-2", "Pole", "", "500.25"),
		line("", "A-1", "Mic", "2", ""),
	)
	ds, err := Load(strings.NewReader(input), DefaultOptions())
	require.NoError(t, err)

	s := Describe(ds.Records)
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 1, s.UniqueCategories)
	assert.Equal(t, 3, s.UniqueItemKeys)
	assert.Equal(t, 2, s.UniqueNames)
	assert.True(t, s.TotalIncome.Equal(decimal.RequireFromString("1500.25")))

	require.Len(t, s.Missing, model.NumColumns)
	assert.Equal(t, ColumnCount{Column: model.ColCategory, Count: 1}, s.Missing[model.ColCategory])
	assert.Equal(t, 1, s.Missing[model.ColQuantity].Count)
	assert.Equal(t, 1, s.Missing[model.ColIncome].Count)
	assert.Equal(t, 3, s.Missing[model.ColRepair].Count)
}
