package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Optimum NUTRITION", "optimum nutrition"},
		{"strips accents", "Protéine Végétale", "proteine vegetale"},
		{"collapses whitespace", "  gold \t standard\n\nwhey  ", "gold standard whey"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"german umlaut", "Müller Ölmühle", "muller olmuhle"},
		{"keeps punctuation", "ISO-100 (Vanilla)", "iso-100 (vanilla)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Crème Brûlée Whey",
		"  MyProtein   Impact\tWhey ",
		"İstanbul Protein",
		"ÅÄÖ åäö",
		"éclair",
		"",
		"already normal",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"gold", "standard"}, Tokenize("gold standard"))
	assert.Empty(t, Tokenize(""))
}

func TestAliasExpander_Expand(t *testing.T) {
	e := NewAliasExpander(DefaultAliases)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"brand nickname", "on", "optimum nutrition"},
		{"nickname inside phrase", "on gold standard", "optimum nutrition gold standard"},
		{"two letter alias", "mp impact whey", "myprotein impact whey"},
		{"multi word key", "dymatize iso 100", "dymatize iso100"},
		{"no partial word match", "onion protein", "onion protein"},
		{"no match inside word", "champion", "champion"},
		{"unrelated text", "vegan blend", "vegan blend"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Expand(tt.input))
		})
	}
}

func TestAliasExpander_OrderResolvesOverlap(t *testing.T) {
	e := NewAliasExpander([]Alias{
		{From: "gold", To: "golden"},
		{From: "gold standard", To: "gs"},
	})
	assert.Equal(t, "golden standard", e.Expand("gold standard"))

	reversed := NewAliasExpander([]Alias{
		{From: "gold standard", To: "gs"},
		{From: "gold", To: "golden"},
	})
	assert.Equal(t, "gs", reversed.Expand("gold standard"))
}

func TestAliasExpander_ReplacementsAreNotRescanned(t *testing.T) {
	e := NewAliasExpander([]Alias{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	})
	assert.Equal(t, "b c", e.Expand("a b"))
}

func TestAliasExpander_RegexMetacharacters(t *testing.T) {
	e := NewAliasExpander([]Alias{
		{From: "c++", To: "cplusplus"},
		{From: "(x)", To: "paren"},
		{From: "a.b", To: "dotted"},
	})

	require.NotPanics(t, func() { e.Expand("[unbalanced (regex *text") })
	assert.Equal(t, "axb", e.Expand("axb"), "dot must be literal")
	assert.Equal(t, "dotted", e.Expand("a.b"))
	assert.Equal(t, "love cplusplus", e.Expand("love c++"))
}

func TestAliasExpander_NilAndEmpty(t *testing.T) {
	var nilExpander *AliasExpander
	assert.Equal(t, "on", nilExpander.Expand("on"))

	empty := NewAliasExpander(nil)
	assert.Equal(t, "on", empty.Expand("on"))
}

func TestTypeClassifier_Classify(t *testing.T) {
	c := MustTypeClassifier(DefaultTypeRules)

	tests := []struct {
		text string
		want string
	}{
		{"Dymatize ISO100 Hydrolyzed", TypeIsolate},
		{"Whey Protein Isolate", TypeIsolate},
		{"iso 100", TypeIsolate},
		{"Micellar Casein", TypeCasein},
		{"Vegan Protein Powder", TypeVegan},
		{"Pea Protein", TypeVegan},
		{"Soja / Soy blend", TypeVegan},
		{"Brown Rice Protein", TypeVegan},
		{"Gold Standard 100% Whey", TypeWhey},
		{"Peanut Butter Cups", ""},
		{"Creatine Monohydrate", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestNewTypeClassifier_InvalidPattern(t *testing.T) {
	_, err := NewTypeClassifier([]TypeRule{{Pattern: "(", Type: "x"}})
	assert.Error(t, err)
	assert.Panics(t, func() { MustTypeClassifier([]TypeRule{{Pattern: "(", Type: "x"}}) })
}
