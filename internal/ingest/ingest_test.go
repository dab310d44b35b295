package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/numbercruncher/internal/cleaner"
	"github.com/Veraticus/numbercruncher/internal/common"
)

const header = "Category,Item Key,Name,Qty,Purchase Costs,Hours,Times Out,Income\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{name: "Inventory Income 2023.csv", want: 2023},
		{name: "/data/exports/income_1999_final.csv", want: 1999},
		{name: "2021-2022 rollup.csv", want: 2021},
		{name: "report-v12024.csv", wantErr: true},
		{name: "income 20245.csv", wantErr: true},
		{name: "income 1850.csv", wantErr: true},
		{name: "income.csv", wantErr: true},
		{name: "2020/income.csv", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractYear(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrNoYearInName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Income 2024.csv", header)
	writeFile(t, dir, "Income 2022.csv", header)
	writeFile(t, dir, "b 2023.csv", header)
	writeFile(t, dir, "a 2023.csv", header)
	writeFile(t, dir, "notes.csv", header)
	writeFile(t, dir, "Income 2021.txt", header)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old 2020.csv"), 0o700))

	sources, skips, err := Discover(dir, "")
	require.NoError(t, err)

	var names []string
	for _, s := range sources {
		names = append(names, filepath.Base(s.Path))
	}
	assert.Equal(t, []string{"Income 2022.csv", "a 2023.csv", "b 2023.csv", "Income 2024.csv"}, names)
	require.Len(t, skips, 1)
	assert.Equal(t, "notes.csv", filepath.Base(skips[0].Path))
	assert.ErrorIs(t, skips[0].Err, common.ErrNoYearInName)
}

func TestDiscover_Errors(t *testing.T) {
	_, _, err := Discover(t.TempDir(), "*.csv")
	assert.ErrorIs(t, err, common.ErrNoFiles)

	_, _, err = Discover(filepath.Join(t.TempDir(), "missing"), "*.csv")
	assert.Error(t, err)

	file := writeFile(t, t.TempDir(), "x 2020.csv", header)
	_, _, err = Discover(file, "*.csv")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "Income 2023.csv", header)
	b := writeFile(t, dir, "Income 2022.csv", header)

	t.Run("directory", func(t *testing.T) {
		sources, _, err := Resolve([]string{dir}, "*.csv")
		require.NoError(t, err)
		assert.Len(t, sources, 2)
	})

	t.Run("explicit files are sorted and deduplicated", func(t *testing.T) {
		sources, _, err := Resolve([]string{a, b, a}, "")
		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, 2022, sources[0].Year)
		assert.Equal(t, 2023, sources[1].Year)
	})

	t.Run("glob", func(t *testing.T) {
		sources, _, err := Resolve([]string{filepath.Join(dir, "*2023*")}, "")
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, a, sources[0].Path)
	})

	t.Run("nothing matches", func(t *testing.T) {
		_, _, err := Resolve([]string{filepath.Join(dir, "*.xlsx")}, "")
		assert.ErrorIs(t, err, common.ErrNoFiles)
	})
}

func TestLoader_LoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Income 2023.csv", header+
		"Tent - 20x20,T-20,Frame Tent,1,,,,\"1,000\"\n"+
		"Audio,A-1,Speaker,2,,,,250\n")
	writeFile(t, dir, "Income 2024.csv", header+
		"Tent - Frame,T-FR,Frame Kit,1,,,,500\n"+
		"Category,Item Key,Name,Qty,,,,\n")
	writeFile(t, dir, "Income 2022.csv", header+"Caf\xe9,T-1,not utf-8,1,,,,5\n")
	writeFile(t, dir, "readme.csv", header)

	var progress bytes.Buffer
	loader := NewLoader(cleaner.DefaultOptions())
	loader.Progress = &progress

	batch, err := loader.LoadDir(context.Background(), dir, "*.csv")
	require.NoError(t, err)

	require.Len(t, batch.Records, 3)
	assert.Equal(t, 2023, batch.Records[0].Year)
	assert.Equal(t, 2023, batch.Records[1].Year)
	assert.Equal(t, 2024, batch.Records[2].Year)
	assert.Equal(t, "T-FR", batch.Records[2].ItemKey)

	require.Len(t, batch.Files, 3)
	assert.Equal(t, 2022, batch.Files[0].Source.Year)
	require.Len(t, batch.Failed(), 1)
	assert.ErrorIs(t, batch.Failed()[0].Err, common.ErrLoadFailed)
	assert.Equal(t, 1, batch.Files[2].Stats.DroppedHeader)

	assert.Equal(t, []int{2023, 2024}, batch.Years())
	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, "readme.csv", filepath.Base(batch.Skipped[0].Path))
	assert.NotEmpty(t, progress.String())
}

func TestLoader_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Income 2023.csv", header+"Audio,A-1,Speaker,2,,,,250\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := NewLoader(cleaner.DefaultOptions()).LoadDir(ctx, dir, "*.csv")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, batch.Records)
}
