package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Archive source types
const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceMinIO = "minio"
)

// Cache drivers
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Archive ArchiveConfig `split_words:"true"`
	Cache   CacheConfig   `split_words:"true"`
	Redis   RedisConfig   `split_words:"true"`
	Storage StorageConfig `split_words:"true"`
	NATS    NATSConfig    `split_words:"true"`
	JWT     JWTConfig     `split_words:"true"`
	Log     LogConfig     `split_words:"true"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `split_words:"true" default:"8080"`
	Host            string        `split_words:"true" default:"0.0.0.0"`
	Environment     string        `split_words:"true" default:"development"`
	AllowedOrigins  []string      `split_words:"true" default:"*"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

// ArchiveConfig describes where the meeting archive comes from and how often it is reloaded
type ArchiveConfig struct {
	SourceType     string        `split_words:"true" default:"file"`
	Path           string        `split_words:"true" default:"data/meetings.json"`
	URL            string        `split_words:"true"`
	Object         string        `split_words:"true" default:"meetings.json"`
	ReloadInterval time.Duration `split_words:"true" default:"0s"`
	ReloadTimeout  time.Duration `split_words:"true" default:"2m"`
	FetchTimeout   time.Duration `split_words:"true" default:"30s"`
	MaxRetryTime   time.Duration `split_words:"true" default:"1m"`
	MaxSizeBytes   int64         `split_words:"true" default:"67108864"`
	WebhookSecret  string        `split_words:"true"`
}

// CacheConfig selects the raw archive cache
type CacheConfig struct {
	Driver string        `split_words:"true" default:"memory"`
	TTL    time.Duration `split_words:"true" default:"5m"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
}

// StorageConfig holds MinIO configuration
type StorageConfig struct {
	Endpoint        string `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string `split_words:"true"`
	SecretAccessKey string `split_words:"true"`
	BucketName      string `split_words:"true" default:"meeting-archive"`
	UseSSL          bool   `split_words:"true" default:"false"`
}

// NATSConfig enables reload events when URL is set
type NATSConfig struct {
	URL     string `split_words:"true"`
	Subject string `split_words:"true" default:"archive.reloaded"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string        `split_words:"true" default:"change-me-in-production"`
	AccessExpiry time.Duration `split_words:"true" default:"15m"`
	Issuer       string        `split_words:"true" default:"meeting-archive"`
}

// LogConfig holds logger configuration. File enables a rotating JSON log.
type LogConfig struct {
	Level      string `split_words:"true" default:"info"`
	File       string `split_words:"true"`
	MaxSizeMB  int    `split_words:"true" default:"10"`
	MaxBackups int    `split_words:"true" default:"5"`
	MaxAgeDays int    `split_words:"true" default:"30"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	c.Archive.SourceType = strings.ToLower(strings.TrimSpace(c.Archive.SourceType))
	c.Cache.Driver = strings.ToLower(strings.TrimSpace(c.Cache.Driver))

	switch c.Archive.SourceType {
	case SourceFile:
		if c.Archive.Path == "" {
			return fmt.Errorf("ARCHIVE_PATH is required for file source")
		}
	case SourceHTTP:
		if c.Archive.URL == "" {
			return fmt.Errorf("ARCHIVE_URL is required for http source")
		}
	case SourceMinIO:
		if c.Storage.Endpoint == "" || c.Storage.BucketName == "" {
			return fmt.Errorf("STORAGE_ENDPOINT and STORAGE_BUCKET_NAME are required for minio source")
		}
		if c.Archive.Object == "" {
			return fmt.Errorf("ARCHIVE_OBJECT is required for minio source")
		}
	default:
		return fmt.Errorf("ARCHIVE_SOURCE_TYPE must be one of file, http, minio (got %q)", c.Archive.SourceType)
	}

	switch c.Cache.Driver {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("CACHE_DRIVER must be one of memory, redis, none (got %q)", c.Cache.Driver)
	}

	if c.Archive.ReloadInterval < 0 {
		return fmt.Errorf("ARCHIVE_RELOAD_INTERVAL must not be negative")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.IsProduction() && c.JWT.AccessSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be changed in production")
	}
	return nil
}

// IsProduction reports whether the server runs with SERVER_ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the HTTP listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
