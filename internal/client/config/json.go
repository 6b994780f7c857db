package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/confsync/confsync/internal/flagx"
	"github.com/confsync/confsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	BaseURL      string         `json:"base_url"`
	LiveURL      string         `json:"live_url"`
	DatabasePath string         `json:"database_path"`
	Timezone     string         `json:"timezone"`
	APIFamily    string         `json:"api_family"`
	FetchTimeout timex.Duration `json:"fetch_timeout"`
	FetchRetries int            `json:"fetch_retries"`
	RetryBackoff timex.Duration `json:"retry_backoff"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. When no file is given, nothing happens. Only
// keys actually present in the file override the current values.
//
// Intended usage is: defaults -> parseEnv -> parseJson -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.LiveURL != "" {
		cfg.LiveURL = jc.LiveURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.Timezone != "" {
		cfg.Timezone = jc.Timezone
	}
	if jc.APIFamily != "" {
		cfg.APIFamily = jc.APIFamily
	}
	if jc.FetchTimeout.Duration != 0 {
		cfg.FetchTimeout = time.Duration(jc.FetchTimeout.Duration)
	}
	if jc.FetchRetries != 0 {
		cfg.FetchRetries = jc.FetchRetries
	}
	if jc.RetryBackoff.Duration != 0 {
		cfg.RetryBackoff = time.Duration(jc.RetryBackoff.Duration)
	}
}
