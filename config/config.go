package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Addr      string        // GATEHOUSE_ADDR (default ":8000")
	DBHost    string        // GATEHOUSE_DB_HOST (default "127.0.0.1")
	DBUser    string        // GATEHOUSE_DB_USER (default "gatehouse")
	DBPass    string        // GATEHOUSE_DB_PASSWORD (default "gatehouse_secret")
	DBName    string        // GATEHOUSE_DB_NAME (default "gatehouse_db")
	JWTSecret string        // GATEHOUSE_JWT_SECRET (default dev key)
	TokenTTL  time.Duration // GATEHOUSE_TOKEN_TTL (default 720h)
	LogLevel  string        // GATEHOUSE_LOG_LEVEL (default "info")
}

func Load() (*Config, error) {
	c := &Config{
		Addr:      envOrDefault("GATEHOUSE_ADDR", ":8000"),
		DBHost:    envOrDefault("GATEHOUSE_DB_HOST", "127.0.0.1"),
		DBUser:    envOrDefault("GATEHOUSE_DB_USER", "gatehouse"),
		DBPass:    envOrDefault("GATEHOUSE_DB_PASSWORD", "gatehouse_secret"),
		DBName:    envOrDefault("GATEHOUSE_DB_NAME", "gatehouse_db"),
		JWTSecret: envOrDefault("GATEHOUSE_JWT_SECRET", "gatehouse-dev-key-change-in-prod"),
		LogLevel:  envOrDefault("GATEHOUSE_LOG_LEVEL", "info"),
	}

	ttlStr := envOrDefault("GATEHOUSE_TOKEN_TTL", "720h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("GATEHOUSE_TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("GATEHOUSE_TOKEN_TTL must be positive, got %s", ttl)
	}
	c.TokenTTL = ttl

	return c, nil
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:3306)/%s?parseTime=true", c.DBUser, c.DBPass, c.DBHost, c.DBName)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
