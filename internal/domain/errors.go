package domain

import "errors"

var (
	// ErrCatalogNotFound is returned when the catalog key holds no value
	ErrCatalogNotFound = errors.New("catalog not found in store")

	// ErrCatalogUnavailable is returned when the catalog store cannot be reached
	ErrCatalogUnavailable = errors.New("catalog store unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrSourceFailure is returned when an external product source request fails
	ErrSourceFailure = errors.New("external source request failed")

	// ErrSourceNotFound is returned when an external source has no match
	ErrSourceNotFound = errors.New("no products found in external source")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
