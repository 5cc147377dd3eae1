// Package normalize turns messy recipe ingredient text into a
// canonical-comparable string. The pipeline is pure and deterministic: no
// store access, no per-call state. Order matters; every stage consumes the
// previous stage's output.
package normalize

import (
	"regexp"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	fraction      = regexp.MustCompile(`\b\d+\s*/\s*\d+\b`)
	punctuation   = regexp.MustCompile(`[.,;:!?*+&]`)
	spaces        = regexp.MustCompile(`\s+`)
)

// isDigits reports a bare quantity token. Digits embedded in an ingredient
// word ("7-up") stay because the whole token is not numeric.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// unicodeFractions show up in scraped recipe text next to ASCII quantities.
var unicodeFractions = strings.NewReplacer(
	"½", " ", "⅓", " ", "⅔", " ", "¼", " ", "¾", " ",
	"⅕", " ", "⅖", " ", "⅗", " ", "⅘", " ",
	"⅙", " ", "⅚", " ", "⅛", " ", "⅜", " ", "⅝", " ", "⅞", " ",
)

// Clean runs the full cleaning pipeline without the dictionary rewrite.
// Exposed separately so curation tooling can inspect the pre-dictionary form.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(raw)
	s = parenthetical.ReplaceAllString(s, " ")
	s = unicodeFractions.Replace(s)
	s = fraction.ReplaceAllString(s, " ")
	s = punctuation.ReplaceAllString(s, " ")

	// A trademark glyph marks the whole field as a brand name
	// ("fleischmann's®"), so the field goes, not just the glyph.
	fields := strings.Fields(s)
	branded := fields[:0]
	for _, f := range fields {
		if hasTrademarkGlyph(f) {
			continue
		}
		branded = append(branded, f)
	}
	s = strings.Join(branded, " ")

	tokens := Words(s)
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if isProtected(t) {
			kept = append(kept, t)
			continue
		}
		if isDigits(t) {
			continue
		}
		if unitSet[t] || descriptorSet[t] || colorSet[t] || countSet[t] || brandSet[t] {
			continue
		}
		kept = append(kept, t)
	}
	kept = trimStopWords(kept)

	s = strings.Join(kept, " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// Normalize is the canonical entry point: Clean plus the exact-match
// dictionary rewrite. Never fails; empty input yields the empty string.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	return lookupDictionary(Clean(raw))
}

// NormalizeWords returns the normalized string as word tokens, the form the
// tagger uses for whole-word containment checks.
func NormalizeWords(raw string) []string {
	return Words(Normalize(raw))
}

// trimStopWords drops connective words left dangling at the edges after
// vocabulary stripping ("pieces of pie" -> "of pie" -> "pie"). Interior stop
// words stay: "cream of mushroom soup" is untouched.
func trimStopWords(tokens []string) []string {
	start := 0
	end := len(tokens)
	for start < end && IsStopWord(tokens[start]) {
		start++
	}
	for end > start && IsStopWord(tokens[end-1]) {
		end--
	}
	return tokens[start:end]
}
