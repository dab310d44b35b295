package taxonomy

import (
	"log/slog"

	"github.com/Veraticus/numbercruncher/internal/model"
)

// Stats counts what a classification pass did.
type Stats struct {
	Input         int
	Uncategorized int
	Excluded      int
	Relabeled     int
	Output        int
}

// Classify filters and relabels records under the rule set. The input slice
// is not modified.
//
// Records without a category are dropped. Every exclusion is applied before
// any relabeling, so exclusion always sees original categories. Relabeling
// then runs rule by rule in declaration order, each rule matching against
// the category as left by the rules before it.
func Classify(records []model.Record, rules RuleSet) []model.Record {
	out, _ := ClassifyWithStats(records, rules)
	return out
}

// ClassifyWithStats is Classify plus counters for reporting.
func ClassifyWithStats(records []model.Record, rules RuleSet) ([]model.Record, Stats) {
	stats := Stats{Input: len(records)}
	out := make([]model.Record, 0, len(records))

	for _, rec := range records {
		if rec.Category == "" {
			stats.Uncategorized++
			continue
		}
		if excluded(rec.Category, rules) {
			stats.Excluded++
			continue
		}
		out = append(out, rec)
	}

	for _, rule := range rules {
		if !rule.Relabels() {
			continue
		}
		for i := range out {
			if out[i].Category != rule.GroupLabel && rule.Match.Match(out[i].Category) {
				out[i].Category = rule.GroupLabel
				stats.Relabeled++
			}
		}
	}

	stats.Output = len(out)
	slog.Debug("classified records",
		"input", stats.Input,
		"uncategorized", stats.Uncategorized,
		"excluded", stats.Excluded,
		"relabeled", stats.Relabeled,
		"output", stats.Output)

	return out, stats
}

func excluded(category string, rules RuleSet) bool {
	for _, rule := range rules {
		if !rule.Include && rule.Match.Match(category) {
			return true
		}
	}
	return false
}
