package usecase

import (
	"log"

	"github.com/proteincompare/backend/internal/textnorm"
)

// PreparedQuery is a search query after normalization and alias expansion.
type PreparedQuery struct {
	Raw        string
	Normalized string
	Expanded   string
	Tokens     []string
}

// IsEmpty reports whether the query has no searchable content
func (q PreparedQuery) IsEmpty() bool {
	return q.Expanded == ""
}

// QueryPreprocessor turns raw query text into its comparison form
type QueryPreprocessor struct {
	expander           *textnorm.AliasExpander
	enableDebugLogging bool
}

// NewQueryPreprocessor creates a new query preprocessor. A nil expander
// leaves queries unexpanded.
func NewQueryPreprocessor(expander *textnorm.AliasExpander, enableDebugLogging bool) *QueryPreprocessor {
	return &QueryPreprocessor{
		expander:           expander,
		enableDebugLogging: enableDebugLogging,
	}
}

// PreprocessQuery normalizes raw, rewrites known aliases and splits the
// result into tokens
func (p *QueryPreprocessor) PreprocessQuery(raw string) PreparedQuery {
	normalized := textnorm.Normalize(raw)
	expanded := textnorm.Normalize(p.expander.Expand(normalized))

	q := PreparedQuery{
		Raw:        raw,
		Normalized: normalized,
		Expanded:   expanded,
		Tokens:     textnorm.Tokenize(expanded),
	}

	if p.enableDebugLogging && raw != "" {
		log.Printf("[PREPROCESS] Input: %q -> Expanded: %q Tokens: %v", raw, q.Expanded, q.Tokens)
	}

	return q
}
