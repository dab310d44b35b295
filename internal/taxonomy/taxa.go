package taxonomy

import (
	"strings"
)

// Taxon is a named umbrella over raw categories.
type Taxon struct {
	Match      Predicate
	Key        string
	Name       string
	GroupLabel string
}

// Taxa returns the known taxa in declaration order. Relabeling runs in this
// order and later taxa see the labels written by earlier ones, so the order
// is part of the behavior: "Linen" becomes "Table Top", which Party Rental
// then claims.
func Taxa() []Taxon {
	return []Taxon{
		{
			Key:        "trade_show",
			Name:       "Trade Show",
			GroupLabel: "Trade Show",
			Match:      Contains("Trade Show"),
		},
		{
			Key:        "tent",
			Name:       "Tent",
			GroupLabel: "Tent",
			Match:      Contains("Tent"),
		},
		{
			Key:        "creative",
			Name:       "Creative",
			GroupLabel: "Creative",
			Match: AnyOf(
				Contains("Creative"),
				OneOf("Decor", "Draping", "Signage", "Floral"),
			),
		},
		{
			Key:        "audio_visual",
			Name:       "Audio/Visual",
			GroupLabel: "Audio/Visual",
			Match: AnyOf(
				Contains("Audio", "Video", "Lighting"),
				OneOf("A/V", "AV", "Projectors", "Screens"),
			),
		},
		{
			Key:        "table_top",
			Name:       "Table Top",
			GroupLabel: "Table Top",
			Match: AnyOf(
				Contains("Table Top", "Tabletop", "Linen"),
				OneOf("China", "Glassware", "Flatware", "Chargers"),
			),
		},
		{
			Key:        "party_rental",
			Name:       "Party Rental",
			GroupLabel: "Party Rental",
			Match: AnyOf(
				Contains("Party"),
				OneOf("Tables", "Chairs", "Dance Floor", "Table Top"),
			),
		},
		{
			Key:        "lavatory",
			Name:       "Lavatory",
			GroupLabel: "Lavatory",
			Match:      Contains("Lavatory", "Restroom", "Portable Toilet"),
		},
	}
}

// NormalizeKey folds a taxon name or key to its key form:
// "Audio/Visual" and "audio-visual" both become "audio_visual".
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "/", "_", "-", "_").Replace(s)
}
