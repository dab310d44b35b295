package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name     string
		pred     Predicate
		category string
		want     bool
	}{
		{name: "contains match", pred: Contains("Tent"), category: "Tent - 20x20", want: true},
		{name: "contains is case-sensitive", pred: Contains("Tent"), category: "tent - frame", want: false},
		{name: "contains any needle", pred: Contains("Audio", "Video"), category: "Video Walls", want: true},
		{name: "contains trims category", pred: Contains("Tent"), category: "  Tent  ", want: true},
		{name: "contains substring inside word", pred: Contains("Tent"), category: "Contents", want: false},
		{name: "one of exact", pred: OneOf("Tables", "Chairs"), category: "Chairs", want: true},
		{name: "one of trims", pred: OneOf("Chairs"), category: " Chairs ", want: true},
		{name: "one of rejects substring", pred: OneOf("Chairs"), category: "Chairs - Folding", want: false},
		{name: "any of first", pred: AnyOf(Contains("Party"), OneOf("Tables")), category: "Party Lights", want: true},
		{name: "any of second", pred: AnyOf(Contains("Party"), OneOf("Tables")), category: "Tables", want: true},
		{name: "any of none", pred: AnyOf(Contains("Party"), OneOf("Tables")), category: "Tents", want: false},
		{name: "empty any of", pred: AnyOf(), category: "Tent", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Match(tt.category))
		})
	}
}

func TestPredicate_String(t *testing.T) {
	p := AnyOf(Contains("Audio", "Video"), OneOf("A/V"))
	assert.Equal(t, `contains "Audio", "Video" or is one of "A/V"`, p.String())
}
