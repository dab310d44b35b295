package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/numbercruncher/internal/aggregate"
	"github.com/Veraticus/numbercruncher/internal/cleaner"
	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/model"
)

func loadYAML(t *testing.T, doc string) (Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ",", cfg.Input.Delimiter)
	assert.Equal(t, cleaner.EncodingAuto, cfg.Input.Encoding)
	assert.Equal(t, "*.csv", cfg.Input.Pattern)
	assert.Equal(t, "by-category", cfg.Report.Orientation)
	assert.Empty(t, cfg.Report.Years)
	assert.True(t, cfg.Ledger.Enabled)
	assert.False(t, strings.HasPrefix(cfg.Ledger.Path, "~"), "ledger path is expanded")
	assert.Len(t, cfg.Taxonomy, 7)

	rules, err := cfg.RuleSet()
	require.NoError(t, err)
	assert.Len(t, rules.Grouped(), 7)
	assert.Empty(t, rules.Excluded())
}

func TestLoad_FromYAML(t *testing.T) {
	cfg, err := loadYAML(t, `
input:
  delimiter: ";"
  encoding: windows-1252
  columns:
    item_key: 0
    category: 1
taxonomy:
  tent:
    include: false
  audio_visual:
    group: false
report:
  orientation: by-year
  years: [2023, 2024]
ledger:
  enabled: false
`)
	require.NoError(t, err)

	opts, err := cfg.CleanerOptions()
	require.NoError(t, err)
	assert.Equal(t, ';', opts.Delimiter)
	assert.Equal(t, cleaner.EncodingWindows1252, opts.Encoding)
	assert.Equal(t, 0, opts.Layout[model.ColItemKey])
	assert.Equal(t, 1, opts.Layout[model.ColCategory])
	assert.Equal(t, 2, opts.Layout[model.ColName])

	popts, err := cfg.PipelineOptions(aggregate.NewYearSet(2022, 2023, 2024))
	require.NoError(t, err)
	assert.Equal(t, model.ByYear, popts.Orientation)
	assert.Equal(t, []int{2023, 2024}, popts.Years.Sorted())

	tent, ok := popts.Rules.Lookup("tent")
	require.True(t, ok)
	assert.False(t, tent.Include)
	assert.True(t, tent.Group, "unset flag keeps its default")

	av, ok := popts.Rules.Lookup("audio_visual")
	require.True(t, ok)
	assert.True(t, av.Include)
	assert.False(t, av.Group)
	assert.Equal(t, []string{"Tent"}, popts.Rules.Excluded())
}

func TestPipelineOptions_AllYearsWhenUnset(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	popts, err := cfg.PipelineOptions(aggregate.NewYearSet(2021, 2022))
	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2022}, popts.Years.Sorted())
	assert.Equal(t, model.ByCategory, popts.Orientation)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantKey string
	}{
		{name: "unknown taxon", doc: "taxonomy:\n  tents:\n    include: false\n", wantKey: "taxonomy[tents]"},
		{name: "long delimiter", doc: "input:\n  delimiter: ';;'\n", wantKey: "input.delimiter"},
		{name: "encoding", doc: "input:\n  encoding: ebcdic\n", wantKey: "input.encoding"},
		{name: "orientation", doc: "report:\n  orientation: sideways\n", wantKey: "report.orientation"},
		{name: "year range", doc: "report:\n  years: [1850]\n", wantKey: "report.years[0]"},
		{name: "log level", doc: "logging:\n  level: loud\n", wantKey: "logging.level"},
		{name: "unknown column", doc: "input:\n  columns:\n    colour: 3\n", wantKey: "input.columns[colour]"},
		{name: "negative column", doc: "input:\n  columns:\n    income: -1\n", wantKey: "input.columns[income]"},
		{name: "ledger path", doc: "ledger:\n  path: ''\n", wantKey: "ledger.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadYAML(t, tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestCleanerOptions_DuplicatePositions(t *testing.T) {
	cfg, err := loadYAML(t, "input:\n  columns:\n    income: 0\n")
	require.NoError(t, err)

	_, err = cfg.CleanerOptions()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("CRUNCH_TEST_DIR", "/tmp/crunch")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/ledger.db", want: filepath.Join(home, "ledger.db")},
		{in: "$CRUNCH_TEST_DIR/ledger.db", want: "/tmp/crunch/ledger.db"},
		{in: "/abs/~/x", want: "/abs/~/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestWriteTaxonomyYAML_RoundTrip(t *testing.T) {
	cfg, err := loadYAML(t, "taxonomy:\n  lavatory:\n    include: false\n  tent:\n    group: false\n")
	require.NoError(t, err)
	rules, err := cfg.RuleSet()
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteTaxonomyYAML(&buf, rules))
	assert.Contains(t, buf.String(), "taxonomy:\n")
	assert.Contains(t, buf.String(), "  lavatory:\n    include: false\n    group: true\n")

	again, err := loadYAML(t, buf.String())
	require.NoError(t, err)
	reloaded, err := again.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, rules.Grouped(), reloaded.Grouped())
	assert.Equal(t, rules.Excluded(), reloaded.Excluded())
}
