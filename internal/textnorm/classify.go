package textnorm

import "regexp"

// Protein categories inferred from free text.
const (
	TypeIsolate = "Isolate"
	TypeCasein  = "Casein"
	TypeVegan   = "Vegan"
	TypeWhey    = "Whey"
)

// TypeRule assigns Type when Pattern matches normalized text.
type TypeRule struct {
	Pattern string
	Type    string
}

// DefaultTypeRules are checked in order; the first match wins. Isolate is
// tested before whey so "whey isolate" is not reported as plain whey.
var DefaultTypeRules = []TypeRule{
	{Pattern: `iso\s*100|isolate`, Type: TypeIsolate},
	{Pattern: `casein`, Type: TypeCasein},
	{Pattern: `vegan|\bpea\b|\bsoy|\brice\b|plant`, Type: TypeVegan},
	{Pattern: `whey`, Type: TypeWhey},
}

type compiledRule struct {
	re  *regexp.Regexp
	typ string
}

// TypeClassifier infers a coarse protein type from product names and
// category strings. It is immutable after construction.
type TypeClassifier struct {
	rules []compiledRule
}

// NewTypeClassifier compiles rules. An invalid pattern is reported as an error
// rather than silently skipped.
func NewTypeClassifier(rules []TypeRule) (*TypeClassifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledRule{re: re, typ: r.Type})
	}
	return &TypeClassifier{rules: compiled}, nil
}

// MustTypeClassifier is NewTypeClassifier for rule tables known at compile time.
func MustTypeClassifier(rules []TypeRule) *TypeClassifier {
	c, err := NewTypeClassifier(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the first matching type for text, or "" when unknown.
func (c *TypeClassifier) Classify(text string) string {
	normalized := Normalize(text)
	if normalized == "" {
		return ""
	}
	for _, r := range c.rules {
		if r.re.MatchString(normalized) {
			return r.typ
		}
	}
	return ""
}
