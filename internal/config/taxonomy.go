package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/numbercruncher/internal/taxonomy"
)

// taxonomyDoc mirrors the taxonomy section of the config file.
type taxonomyDoc struct {
	Taxonomy map[string]taxonomy.Flags `yaml:"taxonomy"`
}

// WriteTaxonomyYAML writes rules as a config file snippet that Load reads
// back to the same rule set.
func WriteTaxonomyYAML(w io.Writer, rules taxonomy.RuleSet) error {
	doc := taxonomyDoc{Taxonomy: make(map[string]taxonomy.Flags, len(rules))}
	for _, r := range rules {
		doc.Taxonomy[r.Key] = r.Flags
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode taxonomy: %w", err)
	}
	return enc.Close()
}
