package domain

import (
	"context"
	"time"
)

// CatalogStore reads raw catalog documents from a key-value store.
// The store is populated by an external writer; this service never writes.
type CatalogStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ProductSource is an external product database mapped into Product.
// Fetch never fails: any error is absorbed and yields an empty slice.
type ProductSource interface {
	Name() string
	Fetch(ctx context.Context, query string) []Product
}

// TypeClassifier infers a coarse protein category from free text.
type TypeClassifier interface {
	Classify(text string) string
}
