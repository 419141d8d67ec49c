package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	CacheBackendMemory   = "memory"
	CacheBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	BotToken   string `env:"BOT_TOKEN"`
	Pixabay    PixabayConfig
	Lookup     LookupConfig
	ImageCache ImageCacheConfig
	Database   DatabaseConfig
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR"             env-default:":8080"`
	PublicURL       string        `env:"SERVER_PUBLIC_URL"       env-default:"http://localhost:8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// PixabayConfig holds upstream image search settings
type PixabayConfig struct {
	APIKey        string `env:"PIXABAY_API_KEY"`
	URL           string `env:"PIXABAY_URL"             env-default:"https://pixabay.com/api/"`
	RatePerMinute int    `env:"PIXABAY_RATE_PER_MINUTE" env-default:"100"`
}

// LookupConfig holds word lookup settings
type LookupConfig struct {
	DictionaryURL      string        `env:"DICTIONARY_URL"       env-default:"https://api.dictionaryapi.dev/api/v2"`
	DatamuseURL        string        `env:"DATAMUSE_URL"         env-default:"https://api.datamuse.com"`
	Debounce           time.Duration `env:"LOOKUP_DEBOUNCE"      env-default:"300ms"`
	Timeout            time.Duration `env:"LOOKUP_TIMEOUT"       env-default:"15s"`
	PreloadBatchPause  time.Duration `env:"PRELOAD_BATCH_PAUSE"  env-default:"100ms"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" env-default:"30m"`
}

// ImageCacheConfig holds proxy cache settings
type ImageCacheConfig struct {
	Backend   string        `env:"IMAGE_CACHE_BACKEND"   env-default:"memory"`
	Fresh     time.Duration `env:"IMAGE_CACHE_FRESH"     env-default:"5m"`
	Retention time.Duration `env:"IMAGE_CACHE_RETENTION" env-default:"10m"`
	Size      int           `env:"IMAGE_CACHE_SIZE"      env-default:"512"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `env:"DB_HOST"     env-default:"localhost"`
	Port     string `env:"DB_PORT"     env-default:"5432"`
	Name     string `env:"DB_NAME"     env-default:"wordlens"`
	User     string `env:"DB_USER"     env-default:"wordlens"`
	Password string `env:"DB_PASSWORD"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	c.ImageCache.Backend = strings.ToLower(strings.TrimSpace(c.ImageCache.Backend))
	switch c.ImageCache.Backend {
	case CacheBackendMemory:
	case CacheBackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the %s cache backend", CacheBackendPostgres)
		}
	default:
		return fmt.Errorf("unknown IMAGE_CACHE_BACKEND %q", c.ImageCache.Backend)
	}

	if c.Lookup.Debounce <= 0 {
		return fmt.Errorf("LOOKUP_DEBOUNCE must be positive")
	}
	if c.Lookup.SessionIdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}
	if c.Pixabay.RatePerMinute <= 0 {
		return fmt.Errorf("PIXABAY_RATE_PER_MINUTE must be positive")
	}
	if c.ImageCache.Retention < c.ImageCache.Fresh {
		return fmt.Errorf("IMAGE_CACHE_RETENTION must not be shorter than IMAGE_CACHE_FRESH")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// ImageProxyURL is the address of this server's image proxy endpoint
func (c *Config) ImageProxyURL() string {
	return strings.TrimRight(c.Server.PublicURL, "/") + "/api/pixabay"
}
