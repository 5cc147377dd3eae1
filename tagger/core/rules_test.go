package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRule_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		rule    MatchRule
		wantErr bool
	}{
		{"valid", MatchRule{Keywords: []string{"milk"}}, false},
		{"no keywords", MatchRule{Exclusions: []string{"soy"}}, true},
		{"blank keyword", MatchRule{Keywords: []string{" "}}, true},
		{"uppercase keyword", MatchRule{Keywords: []string{"Milk"}}, true},
		{"blank exclusion", MatchRule{Keywords: []string{"milk"}, Exclusions: []string{""}}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMatchRule_Matches(t *testing.T) {
	rule := MatchRule{
		Keywords:   []string{"milk"},
		Exclusions: []string{"chocolate", "almond"},
	}

	assert.True(t, rule.matches("whole milk gallon"))
	assert.False(t, rule.matches("chocolate milk"))
	assert.False(t, rule.matches("almond milk unsweetened"))
	assert.False(t, rule.matches("heavy cream"))
}

func TestMatchRule_RequireAll(t *testing.T) {
	rule := MatchRule{
		Keywords:   []string{"peanut", "butter"},
		RequireAll: true,
	}

	assert.True(t, rule.matches("creamy peanut butter"))
	assert.False(t, rule.matches("peanut snack"))
	assert.False(t, rule.matches("butter salted"))
}

func TestDefaultRules_Valid(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
}

func TestRuleTable_RejectsBadKey(t *testing.T) {
	table := RuleTable{"Milk ": {Keywords: []string{"milk"}}}
	require.Error(t, table.Validate())
}
