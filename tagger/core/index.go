package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/SimplyAvi/Dynable-live-sub000/normalize"
)

// tagBlacklist lists canonical names that must never become product tags:
// units, preparation verbs and other words that slipped into the canonical
// store but match half the catalog. Stop words ("and", "of") are rejected
// separately through the tokenizer's stop-word set.
var tagBlacklist = map[string]bool{
	"cup":        true,
	"cups":       true,
	"ounce":      true,
	"ounces":     true,
	"pound":      true,
	"pounds":     true,
	"teaspoon":   true,
	"tablespoon": true,
	"chopped":    true,
	"sliced":     true,
	"diced":      true,
	"minced":     true,
	"drained":    true,
	"mix":        true,
	"mixed":      true,
	"taste":      true,
	"optional":   true,
	"fresh":      true,
	"large":      true,
	"small":      true,
	"medium":     true,
	"white":      true,
	"red":        true,
	"green":      true,
	"black":      true,
	"hot":        true,
	"cold":       true,
	"water":      false, // real ingredient, kept despite looking generic
}

const minTagLength = 3

// ValidTagName is the validation gate every canonical name or alias passes
// before it may produce a tag.
func ValidTagName(name string) bool {
	name = strings.TrimSpace(strings.ToLower(name))
	if len(name) < minTagLength {
		return false
	}
	if tagBlacklist[name] {
		return false
	}
	if normalize.IsStopWord(name) {
		return false
	}
	return true
}

type indexEntry struct {
	phrase string // normalized name or alias
	tag    string // canonical name stamped on matches
	words  int
}

// Index is the matching structure built once per run from the canonical
// store: exact lookups for confident matches, phrase entries for suggested
// whole-word containment.
type Index struct {
	exact   map[string]string
	entries []indexEntry
}

// NewIndex builds the index, dropping every name and alias that fails the
// validation gate. Entries are ordered longest-first so a suggested match
// prefers "cream of mushroom soup" over "mushroom".
func NewIndex(canonicals []Canonical) *Index {
	ix := &Index{exact: make(map[string]string)}

	add := func(raw, tag string) {
		phrase := normalize.Normalize(raw)
		if phrase == "" || !ValidTagName(phrase) {
			return
		}
		if _, ok := ix.exact[phrase]; !ok {
			ix.exact[phrase] = tag
			ix.entries = append(ix.entries, indexEntry{
				phrase: phrase,
				tag:    tag,
				words:  len(normalize.Words(phrase)),
			})
		}
	}

	for _, c := range canonicals {
		add(c.Name, c.Name)
		for _, alias := range c.Aliases {
			add(alias, c.Name)
		}
	}

	slices.SortFunc(ix.entries, func(a, b indexEntry) int {
		if a.words != b.words {
			return cmp.Compare(b.words, a.words)
		}
		if len(a.phrase) != len(b.phrase) {
			return cmp.Compare(len(b.phrase), len(a.phrase))
		}
		return cmp.Compare(a.phrase, b.phrase)
	})
	return ix
}

// Len reports how many phrases survived the validation gate.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Match proposes a tag for a product description. Confident when the fully
// normalized description equals a canonical name or alias; suggested when it
// contains one as a whole-word phrase. Containment is token-based, never raw
// substring: "sliced" does not contain "ice".
func (ix *Index) Match(description string) (TagResult, bool) {
	normalized := normalize.Normalize(description)
	if normalized == "" {
		return TagResult{}, false
	}

	if tag, ok := ix.exact[normalized]; ok {
		return TagResult{Tag: tag, Confidence: ConfidenceConfident}, true
	}

	for _, e := range ix.entries {
		if normalize.ContainsPhrase(normalized, e.phrase) {
			return TagResult{Tag: e.tag, Confidence: ConfidenceSuggested}, true
		}
	}
	return TagResult{}, false
}
