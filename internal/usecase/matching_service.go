package usecase

import (
	"log"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/proteincompare/backend/internal/domain"
	"github.com/proteincompare/backend/internal/textnorm"
)

// Scoring weights, summed independently per token
const (
	haystackMatchPoints    = 2 // token anywhere in brand, product and type
	brandPrefixPoints      = 2 // brand starts with the token
	productMatchPoints     = 1 // token in product name
	typeMatchPoints        = 1 // token in type
	phraseMatchPoints      = 3 // whole expanded query appears in the haystack
	singleTokenBrandPoints = 2 // one-token query found in the brand
	minPhraseLength        = 3
)

// ScoredProduct is a catalog product with its relevance score
type ScoredProduct struct {
	Product domain.Product
	Score   int
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
}

// MatchingService ranks catalog products against a prepared query
type MatchingService struct {
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	return &MatchingService{
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// normalizedFields holds the comparison forms of the fields used for scoring
type normalizedFields struct {
	brand    string
	product  string
	typ      string
	haystack string
}

func normalizeFields(p domain.Product) normalizedFields {
	f := normalizedFields{
		brand:   textnorm.Normalize(p.BrandName()),
		product: textnorm.Normalize(p.ProductName()),
		typ:     textnorm.Normalize(p.Type),
	}
	f.haystack = textnorm.Normalize(f.brand + " " + f.product + " " + f.typ)
	return f
}

// Score computes the relevance of p for q. A score of 0 means no match.
func (s *MatchingService) Score(p domain.Product, q PreparedQuery) int {
	return scoreFields(normalizeFields(p), q)
}

func scoreFields(f normalizedFields, q PreparedQuery) int {
	score := 0

	for _, token := range q.Tokens {
		if strings.Contains(f.haystack, token) {
			score += haystackMatchPoints
		}
		if strings.HasPrefix(f.brand, token) {
			score += brandPrefixPoints
		}
		if strings.Contains(f.product, token) {
			score += productMatchPoints
		}
		if strings.Contains(f.typ, token) {
			score += typeMatchPoints
		}
	}

	if utf8.RuneCountInString(q.Expanded) >= minPhraseLength && strings.Contains(f.haystack, q.Expanded) {
		score += phraseMatchPoints
	}

	if len(q.Tokens) == 1 && strings.Contains(f.brand, q.Tokens[0]) {
		score += singleTokenBrandPoints
	}

	return score
}

// Rank scores every catalog product and returns those with a positive score,
// highest first. Equal scores keep catalog order.
func (s *MatchingService) Rank(catalog []domain.Product, q PreparedQuery) []ScoredProduct {
	ranked := make([]ScoredProduct, 0, len(catalog))

	for _, p := range catalog {
		score := s.Score(p, q)
		if s.enableDebugLogging {
			log.Printf("[MATCH] %q / %q | Score: %d", p.BrandName(), p.ProductName(), score)
		}
		if score > 0 {
			ranked = append(ranked, ScoredProduct{Product: p, Score: score})
		}
	}

	slices.SortStableFunc(ranked, func(a, b ScoredProduct) int {
		return b.Score - a.Score
	})

	return ranked
}

// Fallback returns catalog products whose normalized brand or product name
// contains the expanded query verbatim, in catalog order
func (s *MatchingService) Fallback(catalog []domain.Product, q PreparedQuery) []domain.Product {
	matches := make([]domain.Product, 0)
	if q.IsEmpty() {
		return matches
	}

	for _, p := range catalog {
		f := normalizeFields(p)
		if strings.Contains(f.brand, q.Expanded) || strings.Contains(f.product, q.Expanded) {
			matches = append(matches, p)
		}
	}
	return matches
}

// FindMatches returns the ranked matches for q, or the fallback set when no
// product scores. An empty query matches the whole catalog.
func (s *MatchingService) FindMatches(catalog []domain.Product, q PreparedQuery) []domain.Product {
	if q.IsEmpty() {
		return slices.Clone(catalog)
	}

	ranked := s.Rank(catalog, q)
	if len(ranked) == 0 {
		if s.enableDebugLogging {
			log.Printf("[MATCH] No scored match for %q, using substring fallback", q.Expanded)
		}
		return s.Fallback(catalog, q)
	}

	products := make([]domain.Product, len(ranked))
	for i, r := range ranked {
		products[i] = r.Product
	}
	return products
}
