package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsync/confsync/internal/client/config"
	"github.com/confsync/confsync/internal/client/models"
	"github.com/confsync/confsync/internal/client/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "cache.db")
	return cfg
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app)
	defer app.db.Close()

	assert.NotNil(t, app.sync)
	assert.NotNil(t, app.schedule)
	assert.NotNil(t, app.photos)
	assert.Equal(t, "America/Denver", app.loc.String())
}

func TestNewApp_BadTimezone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timezone = "Mars/Olympus_Mons"

	_, err := NewApp(cfg)
	require.Error(t, err)
}

func TestParseJumpTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, loc)

	t.Run("now", func(t *testing.T) {
		got, err := parseJumpTime("now", now, loc)
		require.NoError(t, err)
		assert.True(t, got.Equal(now))
	})

	t.Run("clock time resolves on the current day", func(t *testing.T) {
		got, err := parseJumpTime("14:00", now, loc)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, 6, 1, 14, 0, 0, 0, loc)))
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseJumpTime("2024-06-02T10:00:00Z", now, loc)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseJumpTime("soon-ish", now, loc)
		require.Error(t, err)
	})
}

func TestFormatViewModel(t *testing.T) {
	vm := models.SessionViewModel{
		SessionID: "s1",
		Title:     "Opening Ceremonies",
		Category:  "Panel",
		Room:      "Main Events",
		IsStarred: true,
	}
	assert.Equal(t, "[s1]* Opening Ceremonies | Panel | Main Events", formatViewModel(vm))

	vm.IsStarred = false
	vm.Room = ""
	assert.Equal(t, "[s1]  Opening Ceremonies | Panel", formatViewModel(vm))
}

func TestSectionHeading(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	assert.Equal(t, "Unscheduled", sectionHeading(services.Section{}, loc))

	start := time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sat 10:00", sectionHeading(services.Section{Start: &start}, loc))
}
