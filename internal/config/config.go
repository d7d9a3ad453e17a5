package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Port            string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string
	StorageDriver   string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTL        time.Duration
	AllowedOrigins  []string
	Environment     string
	LogLevel        string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		MongoDBURI:      getEnvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "hotel_booking"),
		StorageDriver:   strings.ToLower(getEnvWithDefault("STORAGE_DRIVER", StorageMongo)),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %v", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnvWithDefault("CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("CACHE_TTL must be a duration: %v", err)
	}

	for _, origin := range strings.Split(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	// Validate required fields
	if cfg.StorageDriver != StorageMongo && cfg.StorageDriver != StorageMemory {
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageMongo, StorageMemory)
	}
	if cfg.StorageDriver == StorageMongo && cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// MongoDBConnectionURI fills the <password> placeholder used in Atlas URIs.
func (c *Config) MongoDBConnectionURI() string {
	return strings.Replace(c.MongoDBURI, "<password>", c.MongoDBPassword, 1)
}

func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported LOG_LEVEL %q", c.LogLevel)
}

func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
