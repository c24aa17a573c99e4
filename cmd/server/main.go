package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/proteincompare/backend/config"
	httpDelivery "github.com/proteincompare/backend/internal/delivery/http"
	"github.com/proteincompare/backend/internal/domain"
	"github.com/proteincompare/backend/internal/infrastructure/cache"
	"github.com/proteincompare/backend/internal/infrastructure/catalog"
	"github.com/proteincompare/backend/internal/infrastructure/sources"
	"github.com/proteincompare/backend/internal/textnorm"
	"github.com/proteincompare/backend/internal/usecase"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix       = "proteincompare:"
	cacheCleanupInterval = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ProteinCompare Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: store=%s key=%s", cfg.Catalog.Store, cfg.Catalog.Key)
	log.Printf("Cache Type: %s (TTL %s)", cfg.Cache.Type, cfg.Cache.TTL)

	debug := cfg.Server.Environment == "development"

	// Shutdown operations are collected as resources are opened
	closers := map[string]gfshutdown.Operation{}

	// Catalog store
	store, err := newCatalogStore(cfg.Catalog, closers)
	if err != nil {
		log.Fatalf("Failed to initialize catalog store: %v", err)
	}

	// Cache for downloaded source data
	sourceCache, err := newCache(cfg.Cache, closers)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// External sources, merged in this order
	classifier := textnorm.MustTypeClassifier(textnorm.DefaultTypeRules)
	productSources := newSources(cfg, classifier, sourceCache, debug)
	log.Printf("External sources: %d enabled (timeout %s)", len(productSources), cfg.Sources.Timeout)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		usecase.NewCatalogLoader(store, cfg.Catalog.Key),
		usecase.NewQueryPreprocessor(textnorm.NewAliasExpander(textnorm.DefaultAliases), debug),
		productSources,
		usecase.SearchServiceConfig{
			DefaultLimit:       cfg.Search.DefaultLimit,
			MaxLimit:           cfg.Search.MaxLimit,
			SourceTimeout:      cfg.Sources.Timeout,
			EnableDebugLogging: debug,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	closers["http-server"] = func(ctx context.Context) error {
		log.Println("Shutting down HTTP server...")
		return server.Shutdown(ctx)
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.Server.ShutdownTimeout, closers)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// newCatalogStore opens the configured catalog store. The memory store is
// seeded from catalog.file, or with the demo catalog when no file is set.
func newCatalogStore(cfg config.CatalogConfig, closers map[string]gfshutdown.Operation) (domain.CatalogStore, error) {
	switch cfg.Store {
	case "redis":
		store, err := catalog.NewRedisStoreFromURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			// Searches degrade to an empty catalog until Redis is reachable
			log.Printf("WARNING: catalog Redis not reachable: %v", err)
		}

		closers["catalog-redis"] = func(ctx context.Context) error {
			return store.Close()
		}
		return store, nil
	default:
		if cfg.File == "" {
			log.Printf("Catalog: using built-in demo catalog")
			return catalog.NewDemoStore(cfg.Key), nil
		}
		log.Printf("Catalog: loading %s", cfg.File)
		store, err := catalog.NewMemoryStoreFromFile(cfg.Key, cfg.File)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

// newCache builds the cache used by sources that download whole datasets
func newCache(cfg config.CacheConfig, closers map[string]gfshutdown.Operation) (domain.CacheRepository, error) {
	switch cfg.Type {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid cache Redis URL: %w", err)
		}
		client := redis.NewClient(opts)

		closers["cache-redis"] = func(ctx context.Context) error {
			return client.Close()
		}
		return cache.NewRedisCache(client, cacheKeyPrefix), nil
	default:
		memoryCache := cache.NewMemoryCache(cacheCleanupInterval)

		closers["cache-memory"] = func(ctx context.Context) error {
			return memoryCache.Close()
		}
		return memoryCache, nil
	}
}

// newSources creates the enabled external product sources, each with its own
// rate-limited client.
func newSources(cfg *config.Config, classifier domain.TypeClassifier, sourceCache domain.CacheRepository, debug bool) []domain.ProductSource {
	clientConfig := sources.ClientConfig{
		Timeout:         cfg.Sources.Timeout,
		UserAgent:       cfg.Sources.UserAgent,
		RequestsPerHour: cfg.RateLimit.Sources,
	}

	newClient := func(tag string) *sources.Client {
		client := sources.NewClient(tag, clientConfig)
		client.SetDebug(debug)
		return client
	}

	var productSources []domain.ProductSource

	if off := cfg.Sources.OpenFoodFacts; off.Enabled {
		productSources = append(productSources,
			sources.NewOpenFoodFacts(newClient("[OFF]"), classifier, off.BaseURL, off.PageSize))
		log.Printf("Open Food Facts: %s", off.BaseURL)
	}

	if repo := cfg.Sources.FoodRepo; repo.Enabled {
		productSources = append(productSources,
			sources.NewFoodRepo(newClient("[FOODREPO]"), classifier, repo.BaseURL, repo.Token))
		if repo.Token == "" {
			log.Printf("WARNING: FoodRepo configured: %s (token: NOT CONFIGURED - requests may be rejected)", repo.BaseURL)
		} else {
			log.Printf("FoodRepo: %s", repo.BaseURL)
		}
	}

	if osdb := cfg.Sources.OpenSupplementDB; osdb.Enabled {
		productSources = append(productSources,
			sources.NewOpenSupplementDB(newClient("[OSDB]"), osdb.URL, sourceCache, cfg.Cache.TTL))
		log.Printf("OpenSupplementDB: %s", osdb.URL)
	}

	return productSources
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
