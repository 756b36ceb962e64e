// Package config holds the application settings document and the manager
// that loads and persists it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server        ServerSettings       `json:"server"`
	Catalog       CatalogSettings      `json:"catalog"`
	Search        SearchSettings       `json:"search"`
	LazyLoad      LazyLoadSettings     `json:"lazyLoad"`
	Notifications NotificationSettings `json:"notifications"`
	History       HistorySettings      `json:"history"`
	Store         StoreSettings        `json:"store"`
	Log           LogSettings          `json:"log"`
}

type ServerSettings struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	APIKey string `json:"apiKey"`
}

type CatalogSettings struct {
	BaseURL                string `json:"baseUrl"`
	MaxCacheAgeMinutes     int    `json:"maxCacheAgeMinutes"`
	RefreshIntervalMinutes int    `json:"refreshIntervalMinutes"`
	ShelfSize              int    `json:"shelfSize"`
}

// MaxCacheAge returns the snapshot freshness bound as a duration.
func (c CatalogSettings) MaxCacheAge() time.Duration {
	return time.Duration(c.MaxCacheAgeMinutes) * time.Minute
}

// RefreshInterval returns the background update-check period.
func (c CatalogSettings) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMinutes) * time.Minute
}

type SearchSettings struct {
	DebounceMs         int `json:"debounceMs"`
	ResultsPerCategory int `json:"resultsPerCategory"`
}

// DebounceWindow returns the quiet period required before a query fires.
func (s SearchSettings) DebounceWindow() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

type LazyLoadSettings struct {
	MarginPx int `json:"marginPx"`
}

type NotificationSettings struct {
	LifetimeMs int `json:"lifetimeMs"`
}

// Lifetime returns how long a notification stays visible.
func (n NotificationSettings) Lifetime() time.Duration {
	return time.Duration(n.LifetimeMs) * time.Millisecond
}

type HistorySettings struct {
	Capacity int `json:"capacity"`
}

type StoreSettings struct {
	// Backend selects the persistence backend: "file" or "sqlite".
	Backend      string `json:"backend"`
	Directory    string `json:"directory"`
	DatabasePath string `json:"databasePath"`
}

type LogSettings struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"` // megabytes
	MaxBackups int    `json:"maxBackups"`
	MaxAge     int    `json:"maxAge"` // days
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns the configuration written on first run.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host: "0.0.0.0",
			Port: 8590,
		},
		Catalog: CatalogSettings{
			BaseURL:                "https://api.example.com/v1",
			MaxCacheAgeMinutes:     60,
			RefreshIntervalMinutes: 30,
			ShelfSize:              8,
		},
		Search: SearchSettings{
			DebounceMs:         300,
			ResultsPerCategory: 3,
		},
		LazyLoad: LazyLoadSettings{
			MarginPx: 200,
		},
		Notifications: NotificationSettings{
			LifetimeMs: 5000,
		},
		History: HistorySettings{
			Capacity: 20,
		},
		Store: StoreSettings{
			Backend:      "file",
			Directory:    "cache",
			DatabasePath: filepath.Join("cache", "marquee.db"),
		},
		Log: LogSettings{
			File:       filepath.Join("cache", "logs", "marquee.log"),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		},
	}
}

// Manager loads and saves the settings file, creating defaults when the
// file is missing.
type Manager struct {
	mu   sync.Mutex
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// Load reads the settings file. A missing file yields the defaults, which
// are also written back so the file exists for editing. Zero values for
// required knobs are filled in from the defaults.
func (m *Manager) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		s := DefaultSettings()
		if err := m.saveLocked(s); err != nil {
			return Settings{}, err
		}
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	applyDefaults(&s)
	return s, nil
}

// Save persists the settings atomically.
func (m *Manager) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(s)
}

func (m *Manager) saveLocked(s Settings) error {
	dir := filepath.Dir(m.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}

	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create settings temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close settings temp file: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

func applyDefaults(s *Settings) {
	def := DefaultSettings()
	if s.Server.Port == 0 {
		s.Server.Port = def.Server.Port
	}
	if s.Server.Host == "" {
		s.Server.Host = def.Server.Host
	}
	if s.Catalog.BaseURL == "" {
		s.Catalog.BaseURL = def.Catalog.BaseURL
	}
	if s.Catalog.MaxCacheAgeMinutes <= 0 {
		s.Catalog.MaxCacheAgeMinutes = def.Catalog.MaxCacheAgeMinutes
	}
	if s.Catalog.RefreshIntervalMinutes <= 0 {
		s.Catalog.RefreshIntervalMinutes = def.Catalog.RefreshIntervalMinutes
	}
	if s.Catalog.ShelfSize <= 0 {
		s.Catalog.ShelfSize = def.Catalog.ShelfSize
	}
	if s.Search.DebounceMs <= 0 {
		s.Search.DebounceMs = def.Search.DebounceMs
	}
	if s.Search.ResultsPerCategory <= 0 {
		s.Search.ResultsPerCategory = def.Search.ResultsPerCategory
	}
	if s.LazyLoad.MarginPx <= 0 {
		s.LazyLoad.MarginPx = def.LazyLoad.MarginPx
	}
	if s.Notifications.LifetimeMs <= 0 {
		s.Notifications.LifetimeMs = def.Notifications.LifetimeMs
	}
	if s.History.Capacity <= 0 {
		s.History.Capacity = def.History.Capacity
	}
	if s.Store.Backend == "" {
		s.Store.Backend = def.Store.Backend
	}
	if s.Store.Directory == "" {
		s.Store.Directory = def.Store.Directory
	}
	if s.Store.DatabasePath == "" {
		s.Store.DatabasePath = def.Store.DatabasePath
	}
	if s.Log.MaxSize <= 0 {
		s.Log.MaxSize = def.Log.MaxSize
	}
	if s.Log.MaxBackups <= 0 {
		s.Log.MaxBackups = def.Log.MaxBackups
	}
	if s.Log.MaxAge <= 0 {
		s.Log.MaxAge = def.Log.MaxAge
	}
}
