// Package config loads application configuration from environment variables.
// All variables use the PATHWISE_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Cache          CacheConfig
	Engine         EngineConfig
	Log            LogConfig
	CurriculumPath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL keeps
// all stores in memory.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings. An empty URL keeps the
// recommendation cache in memory.
type CacheConfig struct {
	URL string
}

// EngineConfig holds readiness and recommendation settings.
type EngineConfig struct {
	MasteryThreshold int
	FreshnessHours   int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with PATHWISE_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("PATHWISE_SERVER_PORT", 8080),
			Host: envStr("PATHWISE_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("PATHWISE_DATABASE_URL", ""),
			MaxConns: envInt("PATHWISE_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("PATHWISE_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL: envStr("PATHWISE_CACHE_URL", ""),
		},
		Engine: EngineConfig{
			MasteryThreshold: envInt("PATHWISE_ENGINE_MASTERY_THRESHOLD", 70),
			FreshnessHours:   envInt("PATHWISE_ENGINE_FRESHNESS_HOURS", 24),
		},
		Log: LogConfig{
			Level:  envStr("PATHWISE_LOG_LEVEL", "info"),
			Format: envStr("PATHWISE_LOG_FORMAT", "json"),
		},
		CurriculumPath: envStr("PATHWISE_CURRICULUM_PATH", "./curriculum"),
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.CurriculumPath == "" {
		return fmt.Errorf("PATHWISE_CURRICULUM_PATH is required")
	}

	if c.Engine.MasteryThreshold < 1 || c.Engine.MasteryThreshold > 100 {
		return fmt.Errorf("PATHWISE_ENGINE_MASTERY_THRESHOLD must be in 1..100, got %d", c.Engine.MasteryThreshold)
	}

	if c.Engine.FreshnessHours < 1 {
		return fmt.Errorf("PATHWISE_ENGINE_FRESHNESS_HOURS must be positive, got %d", c.Engine.FreshnessHours)
	}

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}