package cleaner

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var missingTokens = map[string]struct{}{
	"":    {},
	"N/A": {},
	"-":   {},
}

// Digits with optional comma thousands groups, optional fraction and a short
// exponent (1e3, 2.5E-1).
var numberPattern = regexp.MustCompile(`^[+-]?(?:(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?|\.\d+)(?:[eE][+-]?\d{1,3})?$`)

// IsMissing reports whether a trimmed cell is one of the missing-value tokens.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ParseNumber parses a numeric cell. Missing tokens and anything that is not a
// plain number yield an invalid NullDecimal; it never fails.
func ParseNumber(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if IsMissing(s) || !numberPattern.MatchString(s) {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// cleanText trims a text cell and maps missing tokens to "".
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return ""
	}
	return s
}
