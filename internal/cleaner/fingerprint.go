package cleaner

import (
	"fmt"
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/Veraticus/numbercruncher/internal/model"
)

const (
	fieldSep   = "\x1f"
	recordSep  = "\x1e"
	missingTag = "\x00"
)

// Fingerprint returns a stable xxh3 digest of the records as 16 hex digits.
// Every field takes part, including the year; a missing measure hashes
// differently from a zero.
func Fingerprint(records []model.Record) string {
	h := xxh3.New()
	for i := range records {
		rec := &records[i]
		for _, c := range model.Columns() {
			if c.IsMeasure() {
				if m := rec.Measure(c); m.Valid {
					_, _ = h.WriteString(m.Decimal.String())
				} else {
					_, _ = h.WriteString(missingTag)
				}
			} else {
				_, _ = h.WriteString(rec.Text(c))
			}
			_, _ = h.WriteString(fieldSep)
		}
		_, _ = h.WriteString(strconv.Itoa(rec.Year))
		_, _ = h.WriteString(recordSep)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// ShortFingerprint trims a fingerprint to its first eight characters for display.
func ShortFingerprint(fp string) string {
	if len(fp) <= 8 {
		return fp
	}
	return fp[:8]
}
