package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with CONFSYNC_* environment variables. A .env
// file in the working directory, when present, is loaded first without
// overriding variables already set in the real environment.
//
// Recognized variables:
//
//	CONFSYNC_BASE_URL       string
//	CONFSYNC_LIVE_URL       string
//	CONFSYNC_DB_PATH        string
//	CONFSYNC_TIMEZONE       string
//	CONFSYNC_API_FAMILY     "current" | "legacy"
//	CONFSYNC_FETCH_TIMEOUT  duration, e.g. "30s"
//	CONFSYNC_FETCH_RETRIES  int
//	CONFSYNC_RETRY_BACKOFF  duration
func parseEnv(cfg *Config) {
	// missing .env is fine
	_ = godotenv.Load()

	if v := os.Getenv("CONFSYNC_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CONFSYNC_LIVE_URL"); v != "" {
		cfg.LiveURL = v
	}
	if v := os.Getenv("CONFSYNC_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("CONFSYNC_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("CONFSYNC_API_FAMILY"); v != "" {
		cfg.APIFamily = v
	}
	if v := os.Getenv("CONFSYNC_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if v := os.Getenv("CONFSYNC_FETCH_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FetchRetries = n
		}
	}
	if v := os.Getenv("CONFSYNC_RETRY_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RetryBackoff = d
		}
	}
}
