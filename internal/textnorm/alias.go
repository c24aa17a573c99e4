package textnorm

import (
	"regexp"
	"strings"
)

// Alias maps a short or ambiguous phrase to its canonical long form.
type Alias struct {
	From string
	To   string
}

// DefaultAliases covers the brand nicknames and product spellings users type
// most often. Order matters: earlier entries win when keys overlap.
var DefaultAliases = []Alias{
	{From: "iso 100", To: "iso100"},
	{From: "on", To: "optimum nutrition"},
	{From: "opt nutrition", To: "optimum nutrition"},
	{From: "mp", To: "myprotein"},
	{From: "my protein", To: "myprotein"},
	{From: "dym", To: "dymatize"},
	{From: "gs whey", To: "gold standard whey"},
}

// AliasExpander rewrites whole-word alias occurrences in normalized text.
// It is immutable after construction and safe for concurrent use.
type AliasExpander struct {
	pattern      *regexp.Regexp
	replacements map[string]string
}

// NewAliasExpander compiles aliases into a single ordered alternation.
// Keys are normalized and regex-quoted, so metacharacters are literal.
func NewAliasExpander(aliases []Alias) *AliasExpander {
	replacements := make(map[string]string, len(aliases))
	alternatives := make([]string, 0, len(aliases))

	for _, a := range aliases {
		from := Normalize(a.From)
		if from == "" {
			continue
		}
		if _, dup := replacements[from]; dup {
			continue
		}
		replacements[from] = Normalize(a.To)
		alternatives = append(alternatives, wordBounded(from))
	}

	e := &AliasExpander{replacements: replacements}
	if len(alternatives) > 0 {
		// RE2 alternation is leftmost-first, so at any position the earliest
		// configured alias that matches claims the span.
		e.pattern = regexp.MustCompile(strings.Join(alternatives, "|"))
	}
	return e
}

// Expand replaces every alias occurrence in normalizedText with its
// canonical form. Replaced text is not rescanned.
func (e *AliasExpander) Expand(normalizedText string) string {
	if e == nil || e.pattern == nil || normalizedText == "" {
		return normalizedText
	}
	return e.pattern.ReplaceAllStringFunc(normalizedText, func(match string) string {
		if to, ok := e.replacements[match]; ok {
			return to
		}
		return match
	})
}

// wordBounded quotes key and anchors it on word boundaries. An edge that is
// not a word character cannot carry \b, so it is left unanchored.
func wordBounded(key string) string {
	quoted := regexp.QuoteMeta(key)
	if isWordByte(key[0]) {
		quoted = `\b` + quoted
	}
	if isWordByte(key[len(key)-1]) {
		quoted += `\b`
	}
	return quoted
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
