package config

import (
	"os"
	"time"
)

type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	// AdminUsernamePrefix enables the legacy rule that auto-grants admin to
	// any username with this prefix. Empty disables it (the default); it is
	// kept only for migrating installs that relied on it.
	AdminUsernamePrefix string
	QueryTimeout        time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SessionSecret:       getEnv("SESSION_SECRET", "secret_key_change_me"),
		AdminUsernamePrefix: os.Getenv("ADMIN_USERNAME_PREFIX"),
		QueryTimeout:        5 * time.Second,
	}

	if v := os.Getenv("QUERY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.QueryTimeout = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
