package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabasePath     string
	JWTSecret        string
	TokenTTL         time.Duration
	SessionTimeout   time.Duration
	SessionPruneSpec string // cron spec for the session pruner
	BcryptCost       int
	Production       bool
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, err
	}

	sessionTimeout, err := time.ParseDuration(getEnv("SESSION_TIMEOUT", "30m"))
	if err != nil {
		return nil, err
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./itemboard.db"),
		JWTSecret:        secret,
		TokenTTL:         tokenTTL,
		SessionTimeout:   sessionTimeout,
		SessionPruneSpec: getEnv("SESSION_PRUNE_SPEC", "@every 5m"),
		BcryptCost:       cost,
		Production:       os.Getenv("APP_ENV") == "production",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
