package ingest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/numbercruncher/internal/common"
)

// A standalone 19xx or 20xx run, not part of a longer digit sequence.
var yearPattern = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)[0-9]{2})(?:[^0-9]|$)`)

// ExtractYear returns the first four-digit year embedded in a file's base
// name, e.g. "Inventory Income 2023.csv" -> 2023.
func ExtractYear(path string) (int, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	m := yearPattern.FindStringSubmatch(base)
	if m == nil {
		return 0, fmt.Errorf("%w: %s", common.ErrNoYearInName, filepath.Base(path))
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", common.ErrNoYearInName, filepath.Base(path))
	}
	return year, nil
}
