package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"confsync"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "schedule.db", cfg.DatabasePath)
	assert.Equal(t, "America/Denver", cfg.Timezone)
	assert.Equal(t, "current", cfg.APIFamily)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.FetchRetries, "no retries by default")
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	resetArgs(t, "-u", "http://conf.example.com", "-f", "legacy", "-r", "3", "-t", "10")

	cfg := LoadConfig()
	assert.Equal(t, "http://conf.example.com", cfg.BaseURL)
	assert.Equal(t, "legacy", cfg.APIFamily)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("CONFSYNC_BASE_URL", "http://env.example.com")
	t.Setenv("CONFSYNC_FETCH_TIMEOUT", "5s")
	t.Setenv("CONFSYNC_FETCH_RETRIES", "2")

	cfg := LoadConfig()
	assert.Equal(t, "http://env.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 2, cfg.FetchRetries)
}

func TestLoadConfig_JsonFileOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_url": "http://json.example.com",
		"database_path": "other.db",
		"retry_backoff": "500ms"
	}`), 0o600))

	resetArgs(t, "-c", path)
	t.Setenv("CONFSYNC_BASE_URL", "http://env.example.com")

	cfg := LoadConfig()
	assert.Equal(t, "http://json.example.com", cfg.BaseURL)
	assert.Equal(t, "other.db", cfg.DatabasePath)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBackoff)
	// keys absent from the file keep the prior value
	assert.Equal(t, "America/Denver", cfg.Timezone)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url": "http://json.example.com"}`), 0o600))

	resetArgs(t, "-c", path, "-u", "http://flag.example.com")

	cfg := LoadConfig()
	assert.Equal(t, "http://flag.example.com", cfg.BaseURL)
}
