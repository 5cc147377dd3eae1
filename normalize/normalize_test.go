package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "", Normalize("2 1/2"))
}

func TestNormalize_Pipeline(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"quantities and units", "2 cups sugar", "sugar"},
		{"fraction", "1/2 cup butter", "butter"},
		{"mixed number", "2 1/4 cups milk", "milk"},
		{"decimal", "1.5 lbs chicken breast", "chicken breast"},
		{"unicode fraction", "½ cup honey", "honey"},
		{"parenthetical", "1 can (15 oz) black beans (optional)", "black beans"},
		{"bracketed", "flour [sifted twice]", "flour"},
		{"descriptors", "finely chopped fresh parsley", "parsley"},
		{"packaging", "1 package cream cheese, softened", "cream cheese"},
		{"room temperature", "3 sticks butter, room temperature", "butter"},
		{"count words", "4 slices bacon", "bacon"},
		{"dangling of", "6 pieces of pie", "pie"},
		{"brand glyph", "fleischmann's® rapidrise yeast", "yeast"},
		{"trademark word", "original brand soy sauce", "soy sauce"},
		{"keeps hyphenated", "1/2 cups all-purpose flour", "all-purpose flour"},
		{"digits inside words stay", "7-up", "7-up"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_Dictionary(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"brown sugar", "sugar"},
		{"1 cup packed brown sugar", "sugar"},
		{"confectioners sugar", "powdered sugar"},
		{"2 1/4 tsp envelopes fleischmann's® rapidrise yeast", "yeast"},
		{"3 cloves garlic, minced", "garlic"},
		{"2 stalks green onions, sliced", "green onion"},
		{"1 can cream of mushroom soup", "cream of mushroom soup"},
		{"chicken stock", "chicken broth"},
		{"1 lb lean ground beef", "ground beef"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

// Protected ingredient names survive unit stripping even though they look
// like units or counters.
func TestNormalize_ProtectedNames(t *testing.T) {
	protected := []string{
		"egg", "eggs", "rice", "shrimp", "crab", "zest",
		"lobster", "seed", "sprig", "clove",
	}

	for _, name := range protected {
		t.Run(name, func(t *testing.T) {
			got := Normalize("2 cups " + name)
			assert.True(t, ContainsWord(got, name),
				"normalize(%q) = %q, want %q kept as a whole word", "2 cups "+name, got, name)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"2 cups sugar",
		"1/2 cups all-purpose flour",
		"2 1/4 tsp envelopes fleischmann's® rapidrise yeast",
		"1 can (15 oz) diced tomatoes, drained",
		"eggs",
		"finely chopped fresh flat-leaf parsley",
		"6 pieces of pie",
		"1 cup packed brown sugar",
		"salt and pepper to taste",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		require.Equal(t, once, twice, "normalize not idempotent for %q", in)
	}
}

// Every dictionary value must be a fixed point, otherwise resolution of a
// rewritten name diverges from the stored canonical spelling.
func TestDictionary_ValuesAreFixedPoints(t *testing.T) {
	for key, value := range dictionary {
		assert.Equal(t, value, Normalize(value),
			"dictionary value %q (for key %q) is not normalization-stable", value, key)
	}
}

// The vocabulary builder must silently refuse protected names so a careless
// edit cannot reintroduce unit-stripping of real ingredients.
func TestVocab_ExcludesProtectedNames(t *testing.T) {
	for name := range protectedNames {
		assert.False(t, unitSet[name], "unit vocabulary contains protected name %q", name)
		assert.False(t, descriptorSet[name], "descriptor vocabulary contains protected name %q", name)
		assert.False(t, countSet[name], "count vocabulary contains protected name %q", name)
	}
}
