package render

import (
	"io"
	"strconv"

	"github.com/Veraticus/numbercruncher/internal/cleaner"
	"github.com/Veraticus/numbercruncher/internal/storage"
	"github.com/Veraticus/numbercruncher/internal/taxonomy"
)

const timeLayout = "2006-01-02 15:04"

// Loads writes ledger load entries, newest first.
func Loads(w io.Writer, loads []storage.LoadEntry) error {
	rows := make([][]string, 0, len(loads))
	for _, e := range loads {
		rows = append(rows, []string{
			e.LoadedAt.Local().Format(timeLayout),
			e.Path,
			cleaner.ShortFingerprint(e.Fingerprint),
			strconv.Itoa(e.Year),
			strconv.Itoa(e.Rows),
			strconv.Itoa(e.Dropped()),
		})
	}
	return writeTable(w, []string{"Loaded", "File", "Fingerprint", "Year", "Rows", "Dropped"}, rows, 3)
}

// Reports writes ledger report runs, newest first.
func Reports(w io.Writer, reports []storage.ReportEntry) error {
	rows := make([][]string, 0, len(reports))
	for _, e := range reports {
		rows = append(rows, []string{
			e.CreatedAt.Local().Format(timeLayout),
			e.Title,
			e.Years,
			strconv.Itoa(e.Records),
			Money(e.Total),
		})
	}
	return writeTable(w, []string{"Run", "Title", "Years", "Records", "Total"}, rows, 3)
}

// Taxa writes each rule's predicate and effective flags in evaluation order.
func Taxa(w io.Writer, rules taxonomy.RuleSet) error {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{
			r.Key,
			r.Name,
			r.Match.String(),
			yesNo(r.Include),
			yesNo(r.Relabels()),
		})
	}
	headers := []string{"Key", "Taxon", "Matches", "Included", "Grouped"}
	return writeTable(w, headers, rows, len(headers))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
