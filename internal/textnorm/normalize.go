// Package textnorm turns free text into the canonical form used for matching:
// accent-free lowercase with single spaces, alias expansion of brand
// nicknames, and keyword-based protein type inference.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, strips combining marks (so "é" matches "e"),
// collapses whitespace runs and trims. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// Tokenize splits normalized text into whitespace-delimited tokens.
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}
