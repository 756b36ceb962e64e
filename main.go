package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"marquee/api"
	"marquee/config"
	"marquee/handlers"
	"marquee/internal/store"
	"marquee/models"
	"marquee/services/catalog"
	"marquee/services/gateway"
	"marquee/services/lazyload"
	"marquee/services/notify"
	"marquee/services/pagination"
	"marquee/services/preferences"
	"marquee/services/profiles"
	"marquee/services/recommend"
	"marquee/services/render"
	"marquee/services/search"
	"marquee/services/watchstate"
	"marquee/utils"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"
)

// placeholderSink registers a lazy-load placeholder for every item that
// lands in the catalog, so posters resolve only once they scroll into view.
type placeholderSink struct {
	lazy *lazyload.Coordinator
}

func (s placeholderSink) SnapshotReady(snapshot models.CatalogSnapshot) {
	for _, it := range snapshot.Movies {
		s.lazy.Register(it.ID, it.PosterURL)
	}
	for _, it := range snapshot.Series {
		s.lazy.Register(it.ID, it.PosterURL)
	}
}

func (s placeholderSink) PageAppended(mediaType models.MediaType, items []models.MediaItem) {
	for _, it := range items {
		s.lazy.Register(it.ID, it.PosterURL)
	}
}

func (s placeholderSink) Notification(n models.Notification) {}

func (s placeholderSink) RecommendationsReady(items []models.MediaItem) {}

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	configFlag := flag.String("config", "", "path to settings file")
	flag.Parse()

	fmt.Println("marquee starting...")

	configPath := *configFlag
	if configPath == "" {
		configPath = os.Getenv("MARQUEE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			slog.SetDefault(slog.New(slog.NewTextHandler(multiWriter, nil)))
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	// Generate an API key on first run
	settings.Server.APIKey = strings.TrimSpace(settings.Server.APIKey)
	if settings.Server.APIKey == "" {
		key, err := utils.GenerateAPIKey()
		if err != nil {
			log.Fatalf("failed to generate api key: %v", err)
		}
		settings.Server.APIKey = key
		if err := cfgManager.Save(settings); err != nil {
			log.Fatalf("failed to persist generated api key: %v", err)
		}
		fmt.Printf("Generated API key: %s\n", key)
	}

	// Persistence backend
	var st store.Store
	var sqliteStore *store.SQLiteStore
	switch settings.Store.Backend {
	case "sqlite":
		sqliteStore, err = store.NewSQLiteStore(settings.Store.DatabasePath)
		if err != nil {
			log.Fatalf("failed to open sqlite store: %v", err)
		}
		st = sqliteStore
	default:
		st, err = store.NewFileStore(afero.NewOsFs(), settings.Store.Directory)
		if err != nil {
			log.Fatalf("failed to open file store: %v", err)
		}
	}

	// Core services
	profilesSvc, err := profiles.NewService(st)
	if err != nil {
		log.Fatalf("failed to init profiles: %v", err)
	}
	prefsSvc, err := preferences.NewService(st)
	if err != nil {
		log.Fatalf("failed to init preferences: %v", err)
	}
	tracker, err := watchstate.NewService(st, settings.History.Capacity)
	if err != nil {
		log.Fatalf("failed to init watch state: %v", err)
	}

	cache := catalog.NewCache(st)
	queue := notify.NewQueue(settings.Notifications.Lifetime())

	resolver, err := lazyload.NewPosterResolver(settings.Store.Directory)
	if err != nil {
		log.Fatalf("failed to init poster cache: %v", err)
	}
	lazy := lazyload.NewCoordinator(resolver, settings.LazyLoad.MarginPx)

	// Render pipeline: every catalog event registers poster placeholders
	// and lands in the structured log.
	sink := render.Tee{
		placeholderSink{lazy: lazy},
		render.NewLogSink(slog.Default()),
	}
	queue.SetEmitter(sink)

	gw := gateway.NewClient(settings.Catalog.BaseURL)
	refresher := catalog.NewRefresher(cache, gw, queue, sink,
		settings.Catalog.MaxCacheAge(), settings.Catalog.RefreshInterval())
	pager := pagination.NewController(gw, cache, queue, sink)

	searcher := search.NewSearcher(cache, settings.Search.ResultsPerCategory)
	dispatcher := search.NewDispatcher(settings.Search.DebounceWindow(),
		func(query string) {
			results := searcher.Search(query)
			slog.Info("search dispatched", "query", query, "results", len(results))
		},
		func() {
			slog.Debug("search results hidden")
		},
	)

	tracker.SetCatalog(cache)
	tracker.SetOnChange(func(profileID string) {
		sink.RecommendationsReady(recommend.Derive(cache.Snapshot(), tracker.HistoryIDs(profileID)))
	})

	// Background refresh loop; the first Ensure hydrates from the store or
	// fetches, so the server comes up with a usable snapshot.
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	go func() {
		if err := refresher.Ensure(refreshCtx); err != nil {
			slog.Warn("initial catalog refresh failed", "error", err)
		}
	}()
	refresher.Start(refreshCtx)

	// HTTP surface
	r := utils.NewRouter()
	api.Register(r,
		handlers.NewCatalogHandler(cache, refresher, tracker, profilesSvc.DefaultID, settings.Catalog.ShelfSize),
		handlers.NewEventsHandler(pager, dispatcher, lazy),
		handlers.NewSearchHandler(searcher),
		handlers.NewWatchStateHandler(tracker, profilesSvc.DefaultID),
		handlers.NewNotificationsHandler(queue),
		handlers.NewProfilesHandler(profilesSvc),
		handlers.NewPreferencesHandler(prefsSvc, profilesSvc.DefaultID),
		handlers.NewImageHandler(resolver),
		func() string { return settings.Server.APIKey },
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("Server starting on %s\n", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutdown signal received, cleaning up...")

	stopRefresh()
	dispatcher.Cancel()
	queue.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if sqliteStore != nil {
		if err := sqliteStore.Close(); err != nil {
			log.Printf("sqlite close error: %v", err)
		}
	}

	log.Println("Shutdown complete")
}
