package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"marquee/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := config.NewManager(path)

	settings, err := m.Load()
	require.NoError(t, err)

	assert.Equal(t, 8590, settings.Server.Port)
	assert.Equal(t, 60, settings.Catalog.MaxCacheAgeMinutes)
	assert.Equal(t, 30, settings.Catalog.RefreshIntervalMinutes)
	assert.Equal(t, 300, settings.Search.DebounceMs)
	assert.Equal(t, 200, settings.LazyLoad.MarginPx)
	assert.Equal(t, 5000, settings.Notifications.LifetimeMs)
	assert.Equal(t, 20, settings.History.Capacity)
	assert.Equal(t, "file", settings.Store.Backend)

	// The defaults were written back for editing.
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := config.NewManager(path)

	settings, err := m.Load()
	require.NoError(t, err)

	settings.Server.Port = 9000
	settings.Catalog.BaseURL = "https://other.example.com/v2"
	settings.Store.Backend = "sqlite"
	require.NoError(t, m.Save(settings))

	reloaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, reloaded.Server.Port)
	assert.Equal(t, "https://other.example.com/v2", reloaded.Catalog.BaseURL)
	assert.Equal(t, "sqlite", reloaded.Store.Backend)
}

func TestLoadFillsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":{"port":1234}}`), 0o644))

	settings, err := config.NewManager(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 1234, settings.Server.Port)
	assert.Equal(t, 300, settings.Search.DebounceMs, "missing knobs fall back to defaults")
	assert.Equal(t, 20, settings.History.Capacity)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	_, err := config.NewManager(path).Load()
	assert.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	s := config.DefaultSettings()
	assert.Equal(t, time.Hour, s.Catalog.MaxCacheAge())
	assert.Equal(t, 30*time.Minute, s.Catalog.RefreshInterval())
	assert.Equal(t, 300*time.Millisecond, s.Search.DebounceWindow())
	assert.Equal(t, 5*time.Second, s.Notifications.Lifetime())
}
