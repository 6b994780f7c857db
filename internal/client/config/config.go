package config

import "time"

// Config holds runtime settings for the confsync CLI.
//
// Fields:
//   - BaseURL: root of the conference REST API.
//   - LiveURL: websocket endpoint for the real-time session feed (optional).
//   - DatabasePath: path of the local SQLite cache file.
//   - Timezone: IANA name of the conference-local timezone, used to
//     interpret naive legacy timestamps.
//   - APIFamily: "current" or "legacy", selecting the session endpoint.
//   - FetchTimeout: per-request HTTP timeout.
//   - FetchRetries: extra attempts for transport errors; 0 keeps the
//     original single-attempt behavior.
//   - RetryBackoff: pause between retry attempts.
type Config struct {
	BaseURL      string
	LiveURL      string
	DatabasePath string
	Timezone     string
	APIFamily    string
	FetchTimeout time.Duration
	FetchRetries int
	RetryBackoff time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://api.example.com"
	c.LiveURL = ""
	c.DatabasePath = "schedule.db"
	c.Timezone = "America/Denver"
	c.APIFamily = "current"
	c.FetchTimeout = 30 * time.Second
	c.FetchRetries = 0
	c.RetryBackoff = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (optionally via a .env file), a JSON file (if
// present), and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
