package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/numbercruncher/internal/common"
)

// Flags are the per-invocation switches for one taxon.
type Flags struct {
	Include bool `mapstructure:"include" yaml:"include"`
	Group   bool `mapstructure:"group" yaml:"group"`
}

// DefaultFlags keeps and groups every taxon.
var DefaultFlags = Flags{Include: true, Group: true}

// Rule is a taxon with its switches applied.
type Rule struct {
	Taxon
	Flags
}

// Relabels reports whether the rule rewrites matching categories. Exclusion
// dominates: an excluded taxon never relabels.
func (r Rule) Relabels() bool {
	return r.Include && r.Group
}

// RuleSet is an ordered list of rules, one per taxon in declaration order.
type RuleSet []Rule

// DefaultRuleSet includes and groups every taxon.
func DefaultRuleSet() RuleSet {
	taxa := Taxa()
	rs := make(RuleSet, len(taxa))
	for i, t := range taxa {
		rs[i] = Rule{Taxon: t, Flags: DefaultFlags}
	}
	return rs
}

// NewRuleSet builds a RuleSet from flags keyed by taxon key or name. Taxa
// absent from the map keep DefaultFlags.
func NewRuleSet(flags map[string]Flags) (RuleSet, error) {
	rs := DefaultRuleSet()
	for key, f := range flags {
		i, err := rs.index(key)
		if err != nil {
			return nil, err
		}
		rs[i].Flags = f
	}
	return rs, nil
}

// With returns a copy of the set with one taxon's flags replaced.
func (rs RuleSet) With(key string, f Flags) (RuleSet, error) {
	i, err := rs.index(key)
	if err != nil {
		return nil, err
	}
	out := make(RuleSet, len(rs))
	copy(out, rs)
	out[i].Flags = f
	return out, nil
}

// Lookup returns the rule for a taxon key or name.
func (rs RuleSet) Lookup(key string) (Rule, bool) {
	i, err := rs.index(key)
	if err != nil {
		return Rule{}, false
	}
	return rs[i], true
}

// Grouped lists the names of taxa that relabel, in declaration order.
func (rs RuleSet) Grouped() []string {
	var names []string
	for _, r := range rs {
		if r.Relabels() {
			names = append(names, r.Name)
		}
	}
	return names
}

// Excluded lists the names of excluded taxa, in declaration order.
func (rs RuleSet) Excluded() []string {
	var names []string
	for _, r := range rs {
		if !r.Include {
			names = append(names, r.Name)
		}
	}
	return names
}

func (rs RuleSet) index(key string) (int, error) {
	norm := NormalizeKey(key)
	for i, r := range rs {
		if r.Key == norm || NormalizeKey(r.Name) == norm {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (known: %s)", common.ErrUnknownTaxon, key, strings.Join(Keys(), ", "))
}

// Keys returns every taxon key, sorted.
func Keys() []string {
	taxa := Taxa()
	keys := make([]string, len(taxa))
	for i, t := range taxa {
		keys[i] = t.Key
	}
	sort.Strings(keys)
	return keys
}
