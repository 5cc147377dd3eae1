package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCanonicals() []Canonical {
	return []Canonical{
		{ID: 1, Name: "ice"},
		{ID: 2, Name: "pie"},
		{ID: 3, Name: "tomato", Aliases: []string{"tomatoes"}},
		{ID: 4, Name: "flour", Aliases: []string{"all-purpose flour"}},
		{ID: 5, Name: "cream of mushroom soup"},
		{ID: 6, Name: "mushroom", Aliases: []string{"mushrooms"}},
		// junk that must be filtered by the validation gate
		{ID: 7, Name: "qt"},
		{ID: 8, Name: "and"},
		{ID: 9, Name: "chopped"},
	}
}

func TestIndex_GateFiltersJunk(t *testing.T) {
	ix := NewIndex(testCanonicals())

	for _, desc := range []string{"qt", "and", "chopped walnuts"} {
		result, ok := ix.Match(desc)
		if ok {
			assert.NotEqual(t, "qt", result.Tag)
			assert.NotEqual(t, "and", result.Tag)
			assert.NotEqual(t, "chopped", result.Tag)
		}
	}
}

func TestIndex_ConfidentOnExactMatch(t *testing.T) {
	ix := NewIndex(testCanonicals())

	testCases := []struct {
		desc string
		tag  string
	}{
		{"All-Purpose Flour", "flour"},
		{"flour", "flour"},
		{"Tomatoes", "tomato"},
		{"Cream of Mushroom Soup", "cream of mushroom soup"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			result, ok := ix.Match(tc.desc)
			require.True(t, ok)
			assert.Equal(t, tc.tag, result.Tag)
			assert.Equal(t, ConfidenceConfident, result.Confidence)
		})
	}
}

func TestIndex_SuggestedOnWholeWordContainment(t *testing.T) {
	ix := NewIndex(testCanonicals())

	result, ok := ix.Match("organic vine tomatoes 1lb")
	require.True(t, ok)
	assert.Equal(t, "tomato", result.Tag)
	assert.Equal(t, ConfidenceSuggested, result.Confidence)
}

// The defect class the whole gate exists for: substring matches across word
// boundaries.
func TestIndex_NeverMatchesAcrossWordBoundaries(t *testing.T) {
	ix := NewIndex(testCanonicals())

	// "sliced" contains "ice" as a raw substring; sliced is also a stripped
	// descriptor, so the cleaned string is "tomatoes"
	result, ok := ix.Match("sliced tomatoes")
	require.True(t, ok)
	assert.NotEqual(t, "ice", result.Tag)
	assert.Equal(t, "tomato", result.Tag)

	// "pieces of pie" cleans down to exactly "pie", which is a legitimate
	// whole-string match
	result, ok = ix.Match("pieces of pie")
	require.True(t, ok)
	assert.Equal(t, "pie", result.Tag)
	assert.Equal(t, ConfidenceConfident, result.Confidence)

	// but "pecan piecrust mix" must not match "pie" inside "piecrust"
	_, ok = ix.Match("pecan piecrust")
	assert.False(t, ok)
}

func TestIndex_PrefersLongestPhrase(t *testing.T) {
	ix := NewIndex(testCanonicals())

	result, ok := ix.Match("condensed cream of mushroom soup 10.5 oz")
	require.True(t, ok)
	assert.Equal(t, "cream of mushroom soup", result.Tag,
		"longest phrase must win over the bare 'mushroom' entry")
}

func TestIndex_NoMatch(t *testing.T) {
	ix := NewIndex(testCanonicals())

	_, ok := ix.Match("dish soap lavender scent")
	assert.False(t, ok)

	_, ok = ix.Match("")
	assert.False(t, ok)
}

func TestValidTagName(t *testing.T) {
	assert.False(t, ValidTagName("ab"), "shorter than 3 characters")
	assert.False(t, ValidTagName("and"), "stop word")
	assert.False(t, ValidTagName("cup"), "blacklisted unit")
	assert.False(t, ValidTagName("chopped"), "blacklisted preparation verb")

	assert.True(t, ValidTagName("egg"))
	assert.True(t, ValidTagName("ice"))
	assert.True(t, ValidTagName("water"))
	assert.True(t, ValidTagName("cream of mushroom soup"))
}
