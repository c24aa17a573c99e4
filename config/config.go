package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Search    SearchConfig    `mapstructure:"search"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CatalogConfig describes where the product catalog document lives
type CatalogConfig struct {
	Store    string `mapstructure:"store"` // "memory" or "redis"
	Key      string `mapstructure:"key"`
	RedisURL string `mapstructure:"redis_url"`
	File     string `mapstructure:"file"` // seeds the memory store; empty uses the demo catalog
}

// SearchConfig holds result limit settings
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// SourcesConfig holds settings for the external product sources
type SourcesConfig struct {
	Timeout          time.Duration          `mapstructure:"timeout"`
	UserAgent        string                 `mapstructure:"user_agent"`
	OpenFoodFacts    OpenFoodFactsConfig    `mapstructure:"openfoodfacts"`
	FoodRepo         FoodRepoConfig         `mapstructure:"foodrepo"`
	OpenSupplementDB OpenSupplementDBConfig `mapstructure:"opensupplementdb"`
}

// OpenFoodFactsConfig holds Open Food Facts API configuration
type OpenFoodFactsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

// FoodRepoConfig holds FoodRepo API configuration
type FoodRepoConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

// OpenSupplementDBConfig holds the location of the static supplement list
type OpenSupplementDBConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP   int `mapstructure:"per_ip"`  // requests per minute, 0 disables
	Sources int `mapstructure:"sources"` // outbound requests per hour per source
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/proteincompare/")

	// Environment variable settings, e.g. PROTEINCOMPARE_CATALOG_REDIS_URL
	v.SetEnvPrefix("PROTEINCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Cache.RedisURL == "" {
		config.Cache.RedisURL = config.Catalog.RedisURL
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if present.
// Variables already set in the environment take precedence.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.shutdown_timeout", "15s")

	// Catalog defaults
	v.SetDefault("catalog.store", "memory")
	v.SetDefault("catalog.key", "products")
	v.SetDefault("catalog.redis_url", "")
	v.SetDefault("catalog.file", "")

	// Search defaults
	v.SetDefault("search.default_limit", 50)
	v.SetDefault("search.max_limit", 10000)

	// Source defaults
	v.SetDefault("sources.timeout", "4s")
	v.SetDefault("sources.user_agent", "ProteinCompare/1.0")
	v.SetDefault("sources.openfoodfacts.enabled", true)
	v.SetDefault("sources.openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("sources.openfoodfacts.page_size", 20)
	v.SetDefault("sources.foodrepo.enabled", true)
	v.SetDefault("sources.foodrepo.base_url", "https://www.foodrepo.org")
	v.SetDefault("sources.foodrepo.token", "")
	v.SetDefault("sources.opensupplementdb.enabled", true)
	v.SetDefault("sources.opensupplementdb.url", "https://raw.githubusercontent.com/opensupplementdb/data/main/proteins.json")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 0)
	v.SetDefault("ratelimit.sources", 1000)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Store != "memory" && config.Catalog.Store != "redis" {
		return fmt.Errorf("catalog store must be 'memory' or 'redis', got: %s", config.Catalog.Store)
	}

	if config.Catalog.Store == "redis" && config.Catalog.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when catalog store is 'redis'")
	}

	if strings.TrimSpace(config.Catalog.Key) == "" {
		return fmt.Errorf("catalog key must not be empty")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Search.DefaultLimit < 1 {
		return fmt.Errorf("search default limit must be at least 1, got: %d", config.Search.DefaultLimit)
	}

	if config.Search.MaxLimit < 1 {
		return fmt.Errorf("search max limit must be at least 1, got: %d", config.Search.MaxLimit)
	}

	if config.Sources.Timeout <= 0 {
		return fmt.Errorf("sources timeout must be positive, got: %s", config.Sources.Timeout)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("per-IP rate limit must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
