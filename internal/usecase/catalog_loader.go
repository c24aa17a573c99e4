package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/proteincompare/backend/internal/domain"
)

// CatalogLoader reads the product catalog document from a store. Load never
// fails: a missing, unreachable or malformed catalog is an empty catalog.
type CatalogLoader struct {
	store domain.CatalogStore
	key   string
}

// NewCatalogLoader creates a loader reading key from store
func NewCatalogLoader(store domain.CatalogStore, key string) *CatalogLoader {
	return &CatalogLoader{store: store, key: key}
}

// Load returns the raw catalog products
func (l *CatalogLoader) Load(ctx context.Context) []domain.Product {
	data, err := l.store.Read(ctx, l.key)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogNotFound) {
			log.Printf("[CATALOG] Key %q is empty", l.key)
		} else {
			log.Printf("[CATALOG] Read failed: %v", err)
		}
		return []domain.Product{}
	}

	products, err := ParseCatalog(data)
	if err != nil {
		log.Printf("[CATALOG] Malformed catalog under %q: %v", l.key, err)
		return []domain.Product{}
	}
	return products
}

// ParseCatalog decodes a catalog document, a JSON array of products
func ParseCatalog(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
