// Package taxonomy groups raw inventory categories under umbrella taxa and
// filters out excluded ones.
package taxonomy

import (
	"fmt"
	"strings"
)

// Predicate decides whether a raw category belongs to a taxon.
type Predicate interface {
	Match(category string) bool
	fmt.Stringer
}

type containsPredicate struct {
	needles []string
}

// Contains matches categories containing any of the needles. Matching is a
// case-sensitive substring test against the trimmed category.
func Contains(needles ...string) Predicate {
	return containsPredicate{needles: needles}
}

func (p containsPredicate) Match(category string) bool {
	category = strings.TrimSpace(category)
	for _, n := range p.needles {
		if strings.Contains(category, n) {
			return true
		}
	}
	return false
}

func (p containsPredicate) String() string {
	return "contains " + quoteAll(p.needles)
}

type oneOfPredicate struct {
	set    map[string]struct{}
	values []string
}

// OneOf matches categories exactly equal to one of the values.
func OneOf(values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return oneOfPredicate{set: set, values: values}
}

func (p oneOfPredicate) Match(category string) bool {
	_, ok := p.set[strings.TrimSpace(category)]
	return ok
}

func (p oneOfPredicate) String() string {
	return "is one of " + quoteAll(p.values)
}

type anyOfPredicate []Predicate

// AnyOf matches when any of the given predicates matches.
func AnyOf(preds ...Predicate) Predicate {
	return anyOfPredicate(preds)
}

func (p anyOfPredicate) Match(category string) bool {
	for _, pred := range p {
		if pred.Match(category) {
			return true
		}
	}
	return false
}

func (p anyOfPredicate) String() string {
	parts := make([]string, len(p))
	for i, pred := range p {
		parts[i] = pred.String()
	}
	return strings.Join(parts, " or ")
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
