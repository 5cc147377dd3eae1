package normalize

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+(?:[-'][a-z0-9]+)*`)

// Words splits an already-lowercased phrase into word tokens. Hyphenated and
// possessive forms stay single tokens ("all-purpose", "confectioner's").
func Words(phrase string) []string {
	if phrase == "" {
		return nil
	}
	return tokenPattern.FindAllString(strings.ToLower(phrase), -1)
}

// ContainsWord reports whether word occurs as a whole token of haystack.
// All vocabulary stripping and tag matching goes through this and
// ContainsPhrase; substring checks against raw strings are how matches like
// "sliced" -> "ice" happen.
func ContainsWord(haystack, word string) bool {
	word = strings.ToLower(word)
	for _, t := range Words(haystack) {
		if t == word {
			return true
		}
	}
	return false
}

// ContainsPhrase reports whether the tokens of phrase occur consecutively in
// haystack. A single-word phrase degrades to ContainsWord.
func ContainsPhrase(haystack, phrase string) bool {
	want := Words(phrase)
	if len(want) == 0 {
		return false
	}
	have := Words(haystack)
	if len(have) < len(want) {
		return false
	}
	for i := 0; i+len(want) <= len(have); i++ {
		matched := true
		for j, w := range want {
			if have[i+j] != w {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// IsStopWord reports whether the word carries no ingredient meaning on its
// own ("and", "of", "the").
func IsStopWord(word string) bool {
	return english.IsStopWord(strings.ToLower(word))
}
