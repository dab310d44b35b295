// Package pipeline runs classification, aggregation and pivoting as one
// call over an in-memory record set.
package pipeline

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/numbercruncher/internal/aggregate"
	"github.com/Veraticus/numbercruncher/internal/model"
	"github.com/Veraticus/numbercruncher/internal/pivot"
	"github.com/Veraticus/numbercruncher/internal/taxonomy"
)

// Options is the per-invocation configuration. It is read, never modified.
type Options struct {
	Years       aggregate.YearSet
	Orientation model.Orientation
	Rules       taxonomy.RuleSet
}

// Result holds every stage's output.
type Result struct {
	Title    string
	Records  []model.Record
	Rows     []model.AggregateRow
	Table    model.PivotTable
	Classify taxonomy.Stats
}

// Run classifies records, keeps the selected years, sums income and pivots.
// The input records are not modified.
func Run(records []model.Record, opts Options) Result {
	classified, stats := taxonomy.ClassifyWithStats(records, opts.Rules)
	rows := aggregate.Aggregate(classified, opts.Years)
	table := pivot.Build(rows, opts.Orientation)

	slog.Debug("pipeline complete",
		"unique_categories_before", uniqueCategories(records),
		"unique_categories_after", uniqueCategories(classified),
		"aggregate_rows", len(rows),
		"pivot_rows", len(table.RowKeys),
		"pivot_columns", len(table.ColumnKeys))

	return Result{
		Title:    Title(table.Orientation, opts.Rules),
		Records:  classified,
		Rows:     rows,
		Table:    table,
		Classify: stats,
	}
}

// Title labels a pivot with its orientation and the taxa that were grouped
// or excluded, e.g. "Income by category - Tent grouped - Lavatory excluded".
func Title(o model.Orientation, rules taxonomy.RuleSet) string {
	parts := []string{o.Title()}
	if grouped := rules.Grouped(); len(grouped) > 0 {
		parts = append(parts, strings.Join(grouped, ", ")+" grouped")
	}
	if excluded := rules.Excluded(); len(excluded) > 0 {
		parts = append(parts, strings.Join(excluded, ", ")+" excluded")
	}
	return strings.Join(parts, " - ")
}

func uniqueCategories(records []model.Record) int {
	seen := make(map[string]struct{})
	for i := range records {
		if records[i].Category != "" {
			seen[records[i].Category] = struct{}{}
		}
	}
	return len(seen)
}
