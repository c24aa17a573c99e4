package usecase

import (
	"context"
	"log"
	"time"

	"github.com/proteincompare/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Default search settings
const (
	DefaultLimit         = 50
	DefaultMaxLimit      = 10000
	DefaultSourceTimeout = 4 * time.Second
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	DefaultLimit       int
	MaxLimit           int
	SourceTimeout      time.Duration
	EnableDebugLogging bool
}

// SearchService answers catalog searches, blending in external sources when
// asked to or when the catalog has nothing to offer.
type SearchService struct {
	loader             *CatalogLoader
	preprocessor       *QueryPreprocessor
	matchingService    *MatchingService
	sources            []domain.ProductSource
	defaultLimit       int
	maxLimit           int
	sourceTimeout      time.Duration
	enableDebugLogging bool
}

// NewSearchService creates a new search service with dependencies. Sources
// are queried concurrently but merged in the order given.
func NewSearchService(
	loader *CatalogLoader,
	preprocessor *QueryPreprocessor,
	sources []domain.ProductSource,
	config SearchServiceConfig,
) *SearchService {
	defaultLimit := config.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}

	maxLimit := config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}

	sourceTimeout := config.SourceTimeout
	if sourceTimeout <= 0 {
		sourceTimeout = DefaultSourceTimeout
	}

	return &SearchService{
		loader:             loader,
		preprocessor:       preprocessor,
		matchingService:    NewMatchingService(MatchConfig{EnableDebugLogging: config.EnableDebugLogging}),
		sources:            sources,
		defaultLimit:       defaultLimit,
		maxLimit:           maxLimit,
		sourceTimeout:      sourceTimeout,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search runs the full pipeline for one request.
// Flow: load catalog -> preprocess query -> rank (or fallback) -> optional
// external blend -> type filter and sort -> limit -> response shaping.
// It never fails; every degraded stage simply contributes fewer results.
func (s *SearchService) Search(ctx context.Context, request domain.SearchRequest) domain.SearchResponse {
	catalog := s.loader.Load(ctx)
	query := s.preprocessor.PreprocessQuery(request.Query)

	results := s.matchingService.FindMatches(catalog, query)

	if s.needsExternal(request, query, results) {
		external := s.fetchExternal(ctx, query.Expanded)
		results = MergeResults(results, external, request.Type)
	}

	results = ApplySortFilter(results, request.Type, request.Sort)

	limit := s.ResolveLimit(request.Limit, len(catalog))
	if len(results) > limit {
		results = results[:limit]
	}

	response := domain.SearchResponse{Results: make([]domain.Product, len(results))}
	for i, p := range results {
		response.Results[i] = p.ForResponse()
	}

	if s.enableDebugLogging {
		log.Printf("[SEARCH] q=%q type=%q sort=%q external=%t -> %d results",
			request.Query, request.Type, request.Sort, request.External, len(response.Results))
	}

	return response
}

// needsExternal applies the blending trigger: an explicit request, or a
// non-empty query with no catalog result left after type filtering.
func (s *SearchService) needsExternal(request domain.SearchRequest, query PreparedQuery, primary []domain.Product) bool {
	if len(s.sources) == 0 {
		return false
	}
	if request.External {
		return true
	}
	return !query.IsEmpty() && len(FilterByType(primary, request.Type)) == 0
}

// fetchExternal queries every source concurrently and waits for all of them.
// Each source runs under its own timeout and a failure, timeout or panic in
// one source yields an empty set without affecting the others.
func (s *SearchService) fetchExternal(ctx context.Context, query string) [][]domain.Product {
	results := make([][]domain.Product, len(s.sources))

	var g errgroup.Group
	for i, source := range s.sources {
		g.Go(func() error {
			results[i] = s.fetchSource(ctx, source, query)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *SearchService) fetchSource(ctx context.Context, source domain.ProductSource, query string) []domain.Product {
	sourceCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan []domain.Product, 1)
	go func() {
		var products []domain.Product
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[SOURCES] %s panicked: %v", source.Name(), r)
			}
			done <- products
		}()
		products = source.Fetch(sourceCtx, query)
	}()

	select {
	case products := <-done:
		if s.enableDebugLogging {
			log.Printf("[SOURCES] %s returned %d products in %s", source.Name(), len(products), time.Since(start))
		}
		return products
	case <-sourceCtx.Done():
		log.Printf("[SOURCES] %s gave up after %s: %v", source.Name(), time.Since(start), sourceCtx.Err())
		return nil
	}
}

// ResolveLimit returns the effective result limit. The default covers the
// whole catalog; requests below 1 use it and everything is capped at the
// larger of the configured maximum and the default.
func (s *SearchService) ResolveLimit(requested, catalogSize int) int {
	def := max(catalogSize, s.defaultLimit)
	upper := max(s.maxLimit, def)

	limit := requested
	if limit < 1 {
		limit = def
	}
	return min(limit, upper)
}
