package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/proteincompare/backend/internal/domain"
	"github.com/proteincompare/backend/internal/textnorm"
	"golang.org/x/sync/singleflight"
)

const (
	supplementListCacheKey = "osdb:list"
	listDownloadTimeout    = 30 * time.Second
)

// OpenSupplementDB serves products from a community maintained static JSON
// list. The list is downloaded once per cache TTL and filtered locally.
type OpenSupplementDB struct {
	client   *Client
	url      string
	cache    domain.CacheRepository
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewOpenSupplementDB creates the adapter. cache may be nil, in which case
// the list is downloaded on every call.
func NewOpenSupplementDB(client *Client, listURL string, cache domain.CacheRepository, cacheTTL time.Duration) *OpenSupplementDB {
	return &OpenSupplementDB{
		client:   client,
		url:      listURL,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Name identifies the source in logs and result provenance
func (o *OpenSupplementDB) Name() string {
	return domain.SourceOpenSupplementDB
}

// Fetch returns mapped products matching query; failures yield no results
func (o *OpenSupplementDB) Fetch(ctx context.Context, query string) []domain.Product {
	products, err := o.Search(ctx, query)
	if err != nil {
		log.Printf("[OSDB] Search failed for query %q: %v", query, err)
		return nil
	}
	return products
}

// Search keeps list entries whose name, brand or type contains the
// normalized query. An empty query matches every entry.
func (o *OpenSupplementDB) Search(ctx context.Context, query string) ([]domain.Product, error) {
	items, err := o.list(ctx)
	if err != nil {
		return nil, err
	}

	needle := textnorm.Normalize(query)
	products := make([]domain.Product, 0)
	for _, item := range items {
		p, ok := mapSupplement(item)
		if !ok {
			continue
		}
		if needle == "" || supplementMatches(p, needle) {
			products = append(products, p)
		}
	}

	o.client.debugLog("Matched %d of %d list entries for query %q", len(products), len(items), query)
	return products, nil
}

func supplementMatches(p domain.Product, needle string) bool {
	for _, field := range []string{p.ProductName(), p.BrandName(), p.Type} {
		if strings.Contains(textnorm.Normalize(field), needle) {
			return true
		}
	}
	return false
}

// list returns the parsed supplement list, consulting the cache first.
// Concurrent misses share a single download. The download is detached from
// the caller's context so one caller giving up does not fail the others;
// each caller still stops waiting when its own context ends.
func (o *OpenSupplementDB) list(ctx context.Context) ([]map[string]any, error) {
	if o.cache != nil {
		data, err := o.cache.Get(ctx, supplementListCacheKey)
		if err == nil {
			if items, perr := parseSupplementList(data); perr == nil {
				return items, nil
			}
			log.Printf("[OSDB] Discarding unparseable cached list")
			if err := o.cache.Delete(ctx, supplementListCacheKey); err != nil {
				log.Printf("[OSDB] Cache delete failed: %v", err)
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			log.Printf("[OSDB] Cache read failed: %v", err)
		}
	}

	ch := o.group.DoChan(o.url, func() (any, error) {
		downloadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listDownloadTimeout)
		defer cancel()

		data, err := o.client.Get(downloadCtx, o.url, nil)
		if err != nil {
			return nil, err
		}
		items, err := parseSupplementList(data)
		if err != nil {
			return nil, err
		}
		if o.cache != nil {
			if err := o.cache.Set(downloadCtx, supplementListCacheKey, data, o.cacheTTL); err != nil {
				log.Printf("[OSDB] Cache write failed: %v", err)
			}
		}
		return items, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			o.client.debugLog("Shared in-flight list download")
		}
		return res.Val.([]map[string]any), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// parseSupplementList accepts either a bare array or an object wrapping the
// array in a "products" field
func parseSupplementList(data []byte) ([]map[string]any, error) {
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Products []map[string]any `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if wrapped.Products == nil {
		return nil, fmt.Errorf("failed to decode response: no products array")
	}
	return wrapped.Products, nil
}

// mapSupplement maps a list entry, accepting the field spellings seen across
// contributors to the list
func mapSupplement(m map[string]any) (domain.Product, bool) {
	p := domain.Product{
		ID:                 domain.StringValue(m["id"]),
		Brand:              domain.FirstString(m["brand"], m["manufacturer"]),
		Product:            domain.FirstString(m["name"], m["product"], m["productName"]),
		PricePerKg:         domain.FirstNumber(m["pricePerKg"], m["price_per_kg"]),
		ServingSizeG:       domain.FirstNumber(m["servingSizeG"], m["serving_size"]),
		ProteinPer100g:     domain.FirstNumber(m["proteinPer100g"], m["protein_content"], m["protein"]),
		CaloriesPer100g:    domain.FirstNumber(m["caloriesPer100g"], m["calories"], m["energy_kcal"]),
		CaloriesPerServing: domain.FirstNumber(m["caloriesPerServing"], m["calories_per_serving"]),
		CarbsPerServing:    domain.FirstNumber(m["carbsPerServing"], m["carbs"]),
		FatPerServing:      domain.FirstNumber(m["fatPerServing"], m["fat"]),
		Origin:             domain.FirstString(m["origin"], m["country"]),
		Source:             domain.SourceOpenSupplementDB,
		URL:                domain.FirstString(m["url"], m["link"]),
	}
	if t := domain.FirstString(m["type"], m["category"]); t != nil {
		p.Type = *t
	}
	for field, dst := range map[string]*json.RawMessage{
		"sweeteners": &p.Sweeteners,
		"allergens":  &p.Allergens,
		"rating":     &p.Rating,
	} {
		if v, ok := m[field]; ok && v != nil {
			if raw, err := json.Marshal(v); err == nil {
				*dst = raw
			}
		}
	}

	return finishProduct(p)
}
