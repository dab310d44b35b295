package cleaner

import (
	"fmt"

	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/model"
)

// DefaultHeaderToken is the header text of the item key column. Multi-section
// exports repeat the header block, so rows carrying it as data are dropped.
const DefaultHeaderToken = "Item Key"

// Layout maps canonical columns to zero-based source positions. Columns
// without an entry are absent from the source.
type Layout map[model.Column]int

// DefaultLayout maps every canonical column to its canonical position.
func DefaultLayout() Layout {
	l := make(Layout, model.NumColumns)
	for _, c := range model.Columns() {
		l[c] = int(c)
	}
	return l
}

// Validate rejects negative or duplicated positions.
func (l Layout) Validate() error {
	seen := make(map[int]model.Column, len(l))
	for c, pos := range l {
		if pos < 0 {
			return fmt.Errorf("%w: column %s has negative position %d", common.ErrInvalidConfig, c, pos)
		}
		if other, ok := seen[pos]; ok {
			return fmt.Errorf("%w: columns %s and %s share position %d", common.ErrInvalidConfig, other, c, pos)
		}
		seen[pos] = c
	}
	return nil
}

// Options configures loading and cleaning.
type Options struct {
	Layout      Layout
	Encoding    string
	HeaderToken string
	Delimiter   rune
}

// DefaultOptions returns comma-delimited, auto-detected encoding and the
// canonical layout.
func DefaultOptions() Options {
	return Options{
		Layout:      DefaultLayout(),
		Delimiter:   ',',
		Encoding:    EncodingAuto,
		HeaderToken: DefaultHeaderToken,
	}
}

func (o Options) withDefaults() Options {
	if o.Layout == nil {
		o.Layout = DefaultLayout()
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Encoding == "" {
		o.Encoding = EncodingAuto
	}
	if o.HeaderToken == "" {
		o.HeaderToken = DefaultHeaderToken
	}
	return o
}
