// Package config loads and validates numbercruncher settings from viper.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/Veraticus/numbercruncher/internal/aggregate"
	"github.com/Veraticus/numbercruncher/internal/cleaner"
	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/ingest"
	"github.com/Veraticus/numbercruncher/internal/model"
	"github.com/Veraticus/numbercruncher/internal/pipeline"
	"github.com/Veraticus/numbercruncher/internal/taxonomy"
)

// Config is the typed view of every recognised setting.
type Config struct {
	Taxonomy map[string]taxonomy.Flags `mapstructure:"taxonomy" validate:"dive,keys,taxon,endkeys"`
	Logging  LoggingConfig             `mapstructure:"logging"`
	Input    InputConfig               `mapstructure:"input"`
	Ledger   LedgerConfig              `mapstructure:"ledger"`
	Report   ReportConfig              `mapstructure:"report"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=console text json"`
}

// InputConfig controls how export files are found and parsed.
type InputConfig struct {
	// Columns overrides source positions by column name, e.g. item_key: 0.
	Columns     map[string]int `mapstructure:"columns" validate:"dive,keys,column,endkeys,gte=0"`
	Delimiter   string         `mapstructure:"delimiter" validate:"len=1"`
	Encoding    string         `mapstructure:"encoding" validate:"oneof=auto utf-8 utf8 windows-1252 cp1252 latin1 iso-8859-1"`
	HeaderToken string         `mapstructure:"header_token" validate:"required"`
	Pattern     string         `mapstructure:"pattern" validate:"required"`
}

// ReportConfig holds the default report selection.
type ReportConfig struct {
	Orientation string `mapstructure:"orientation" validate:"oneof=by-year by-category by_year by_category year category"`
	Years       []int  `mapstructure:"years" validate:"dive,gte=1900,lte=2099"`
}

// LedgerConfig locates the load ledger.
type LedgerConfig struct {
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
	Enabled bool   `mapstructure:"enabled"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("input.delimiter", ",")
	v.SetDefault("input.encoding", cleaner.EncodingAuto)
	v.SetDefault("input.header_token", cleaner.DefaultHeaderToken)
	v.SetDefault("input.pattern", ingest.DefaultPattern)

	for _, key := range taxonomy.Keys() {
		v.SetDefault("taxonomy."+key+".include", taxonomy.DefaultFlags.Include)
		v.SetDefault("taxonomy."+key+".group", taxonomy.DefaultFlags.Group)
	}

	v.SetDefault("report.orientation", string(model.ByCategory))
	v.SetDefault("report.years", []int{})

	v.SetDefault("ledger.enabled", true)
	v.SetDefault("ledger.path", DefaultLedgerPath)
}

// Load applies defaults, unmarshals v and validates the result.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	cfg.Ledger.Path = ExpandPath(cfg.Ledger.Path)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	return NewValidator().Validate(c)
}

// CleanerOptions converts the input section into cleaning options.
func (c Config) CleanerOptions() (cleaner.Options, error) {
	opts := cleaner.DefaultOptions()
	opts.Encoding = c.Input.Encoding
	opts.HeaderToken = c.Input.HeaderToken

	if c.Input.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(c.Input.Delimiter)
		if r == utf8.RuneError || size != len(c.Input.Delimiter) {
			return cleaner.Options{}, fmt.Errorf("%w: delimiter %q must be one character", common.ErrInvalidConfig, c.Input.Delimiter)
		}
		opts.Delimiter = r
	}

	for name, pos := range c.Input.Columns {
		col, ok := columnByName(name)
		if !ok {
			return cleaner.Options{}, fmt.Errorf("%w: unknown column %q", common.ErrInvalidConfig, name)
		}
		opts.Layout[col] = pos
	}
	if err := opts.Layout.Validate(); err != nil {
		return cleaner.Options{}, err
	}

	return opts, nil
}

// RuleSet converts the taxonomy section into a rule set.
func (c Config) RuleSet() (taxonomy.RuleSet, error) {
	return taxonomy.NewRuleSet(c.Taxonomy)
}

// PipelineOptions builds the per-invocation pipeline configuration. When no
// years are configured, every year in available is selected.
func (c Config) PipelineOptions(available aggregate.YearSet) (pipeline.Options, error) {
	rules, err := c.RuleSet()
	if err != nil {
		return pipeline.Options{}, err
	}
	orientation, err := model.ParseOrientation(c.Report.Orientation)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	years := available
	if len(c.Report.Years) > 0 {
		years = aggregate.NewYearSet(c.Report.Years...)
	}

	return pipeline.Options{Rules: rules, Years: years, Orientation: orientation}, nil
}

// columnByName resolves "item_key", "Item Key" or "item-key" to a column.
func columnByName(name string) (model.Column, bool) {
	norm := taxonomy.NormalizeKey(name)
	for _, c := range model.Columns() {
		if taxonomy.NormalizeKey(c.String()) == norm {
			return c, true
		}
	}
	return 0, false
}
