package core

import (
	"fmt"
	"strings"

	"github.com/SimplyAvi/Dynable-live-sub000/normalize"
)

// MatchRule is the per-ingredient escalation rule for the verified level.
// A suggested or confident match on the rule's ingredient is escalated when
// the description carries the required keywords, none of the exclusions, and
// the product has a real brand owner.
type MatchRule struct {
	// Keywords that must appear in the description, whole-word. With
	// RequireAll every keyword must be present, otherwise one suffices.
	Keywords   []string
	Exclusions []string
	RequireAll bool
}

// Validate rejects malformed rules at load time rather than mid-run.
func (r MatchRule) Validate() error {
	if len(r.Keywords) == 0 {
		return fmt.Errorf("rule has no keywords")
	}
	for _, k := range append(append([]string{}, r.Keywords...), r.Exclusions...) {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("rule contains blank term")
		}
		if k != strings.ToLower(k) {
			return fmt.Errorf("rule term %q is not lowercase", k)
		}
	}
	return nil
}

// matches applies the rule to a raw product description. Containment is
// token-based and case-insensitive, so no prior cleaning is needed; running
// on the raw text keeps exclusions like "buttermilk" visible.
func (r MatchRule) matches(description string) bool {
	found := 0
	for _, k := range r.Keywords {
		if normalize.ContainsPhrase(description, k) {
			found++
		}
	}
	if r.RequireAll {
		if found != len(r.Keywords) {
			return false
		}
	} else if found == 0 {
		return false
	}
	for _, e := range r.Exclusions {
		if normalize.ContainsPhrase(description, e) {
			return false
		}
	}
	return true
}

// RuleTable maps a canonical ingredient name to its verified-escalation rule.
type RuleTable map[string]MatchRule

// Validate checks every rule and that rule keys are normalized names.
func (t RuleTable) Validate() error {
	for name, rule := range t {
		if name != strings.ToLower(strings.TrimSpace(name)) {
			return fmt.Errorf("rule key %q is not a normalized name", name)
		}
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("rule %q: %w", name, err)
		}
	}
	return nil
}

// DefaultRules covers the high-value categories where suggested matches are
// too loose: staples with large branded catalogs and frequent compound
// descriptions ("chocolate milk", "almond flour") that must not be sold as
// the plain ingredient.
func DefaultRules() RuleTable {
	return RuleTable{
		"milk": {
			Keywords:   []string{"milk"},
			Exclusions: []string{"chocolate", "almond", "soy", "oat", "coconut", "evaporated", "condensed", "buttermilk", "powder"},
		},
		"flour": {
			Keywords:   []string{"flour"},
			Exclusions: []string{"almond", "coconut", "rice", "tortilla", "bread mix", "cake mix"},
		},
		"butter": {
			Keywords:   []string{"butter"},
			Exclusions: []string{"peanut", "almond", "cocoa", "apple", "body", "shea"},
		},
		"sugar": {
			Keywords:   []string{"sugar"},
			Exclusions: []string{"free", "substitute", "cookie", "cone"},
		},
		"egg": {
			Keywords:   []string{"egg", "eggs"},
			Exclusions: []string{"noodle", "roll", "nog", "substitute", "plant"},
		},
		"cheese": {
			Keywords:   []string{"cheese"},
			Exclusions: []string{"cream cheese", "cheesecake", "cheese cracker", "mac"},
		},
		"yeast": {
			Keywords:   []string{"yeast"},
			Exclusions: []string{"nutritional", "extract"},
		},
		"peanut butter": {
			Keywords:   []string{"peanut", "butter"},
			RequireAll: true,
			Exclusions: []string{"candy", "cookie", "cereal"},
		},
		"olive oil": {
			Keywords:   []string{"olive", "oil"},
			RequireAll: true,
			Exclusions: []string{"blend", "spray", "mayonnaise"},
		},
		"chicken breast": {
			Keywords:   []string{"chicken", "breast"},
			RequireAll: true,
			Exclusions: []string{"breaded", "nugget", "patty", "canned"},
		},
	}
}
