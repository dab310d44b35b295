package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money formats d with two decimals and comma thousands separators,
// e.g. -1234.5 -> "-1,234.50".
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	return sign + groupThousands(intPart) + "." + frac
}

// Number formats a measure without forcing decimals, e.g. 12000 -> "12,000".
func Number(d decimal.Decimal) string {
	s := d.String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	out := sign + groupThousands(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
