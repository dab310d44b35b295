package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/numbercruncher/internal/common"
)

func TestTaxa_DeclarationOrder(t *testing.T) {
	var names []string
	for _, tx := range Taxa() {
		names = append(names, tx.Name)
	}
	assert.Equal(t, []string{
		"Trade Show", "Tent", "Creative", "Audio/Visual", "Table Top", "Party Rental", "Lavatory",
	}, names)
}

func TestTaxa_LabelMatchesOwnPredicate(t *testing.T) {
	// An excluded taxon must also catch raw categories spelled like its label.
	for _, tx := range Taxa() {
		assert.True(t, tx.Match.Match(tx.GroupLabel), tx.Name)
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "audio_visual", NormalizeKey("Audio/Visual"))
	assert.Equal(t, "trade_show", NormalizeKey(" Trade Show "))
	assert.Equal(t, "party_rental", NormalizeKey("party-rental"))
}

func TestNewRuleSet(t *testing.T) {
	rs, err := NewRuleSet(map[string]Flags{
		"tent":         {Include: false, Group: true},
		"Audio/Visual": {Include: true, Group: false},
	})
	require.NoError(t, err)
	require.Len(t, rs, len(Taxa()))

	tent, ok := rs.Lookup("Tent")
	require.True(t, ok)
	assert.False(t, tent.Include)
	assert.False(t, tent.Relabels(), "exclusion dominates grouping")

	av, ok := rs.Lookup("audio_visual")
	require.True(t, ok)
	assert.Equal(t, Flags{Include: true, Group: false}, av.Flags)

	lav, _ := rs.Lookup("lavatory")
	assert.Equal(t, DefaultFlags, lav.Flags)

	assert.Equal(t, []string{"Tent"}, rs.Excluded())
	assert.Equal(t, []string{"Trade Show", "Creative", "Table Top", "Party Rental", "Lavatory"}, rs.Grouped())
}

func TestNewRuleSet_UnknownTaxon(t *testing.T) {
	_, err := NewRuleSet(map[string]Flags{"bouncy_castle": DefaultFlags})
	assert.ErrorIs(t, err, common.ErrUnknownTaxon)
}

func TestRuleSet_WithCopies(t *testing.T) {
	base := DefaultRuleSet()
	changed, err := base.With("creative", Flags{Include: false})
	require.NoError(t, err)

	orig, _ := base.Lookup("creative")
	assert.True(t, orig.Include, "original set is untouched")
	updated, _ := changed.Lookup("creative")
	assert.False(t, updated.Include)

	_, err = base.With("nope", DefaultFlags)
	assert.ErrorIs(t, err, common.ErrUnknownTaxon)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{
		"audio_visual", "creative", "lavatory", "party_rental", "table_top", "tent", "trade_show",
	}, Keys())
}
