// Package api mounts the HTTP surface onto the shared router.
package api

import (
	"crypto/subtle"
	"net/http"

	"marquee/handlers"

	"github.com/gorilla/mux"
)

// apiKeyMiddleware rejects requests without the configured key. An
// empty configured key leaves the API open, which is the default for
// local use.
func apiKeyMiddleware(getKey func() string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getKey()
			if key == "" || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			supplied := r.Header.Get("X-Api-Key")
			if supplied == "" {
				supplied = r.URL.Query().Get("apiKey")
			}
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				http.Error(w, "invalid api key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	catalogHandler *handlers.CatalogHandler,
	eventsHandler *handlers.EventsHandler,
	searchHandler *handlers.SearchHandler,
	watchStateHandler *handlers.WatchStateHandler,
	notificationsHandler *handlers.NotificationsHandler,
	profilesHandler *handlers.ProfilesHandler,
	preferencesHandler *handlers.PreferencesHandler,
	imageHandler *handlers.ImageHandler,
	getAPIKey func() string,
) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(apiKeyMiddleware(getAPIKey))

	// Catalog and derived views
	api.HandleFunc("/catalog", catalogHandler.GetCatalog).Methods(http.MethodGet)
	api.HandleFunc("/catalog/refresh", catalogHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/catalog/trending", catalogHandler.GetTrending).Methods(http.MethodGet)
	api.HandleFunc("/catalog/exclusive", catalogHandler.GetExclusive).Methods(http.MethodGet)
	api.HandleFunc("/catalog/{id}", catalogHandler.GetItem).Methods(http.MethodGet)
	api.HandleFunc("/catalog/{id}/related", catalogHandler.GetRelated).Methods(http.MethodGet)
	api.HandleFunc("/recommendations", catalogHandler.GetRecommendations).Methods(http.MethodGet)

	// Interaction events
	api.HandleFunc("/events/scroll", eventsHandler.Scroll).Methods(http.MethodPost)
	api.HandleFunc("/events/search-input", eventsHandler.SearchInput).Methods(http.MethodPost)
	api.HandleFunc("/events/visible", eventsHandler.Visible).Methods(http.MethodPost)

	// Direct search
	api.HandleFunc("/search", searchHandler.Search).Methods(http.MethodGet)

	// Watch history and watchlist
	api.HandleFunc("/history", watchStateHandler.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/history", watchStateHandler.RecordWatch).Methods(http.MethodPost)
	api.HandleFunc("/watchlist", watchStateHandler.GetWatchlist).Methods(http.MethodGet)
	api.HandleFunc("/watchlist/toggle", watchStateHandler.ToggleWatchlist).Methods(http.MethodPost)

	// Notifications
	api.HandleFunc("/notifications", notificationsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}", notificationsHandler.Dismiss).Methods(http.MethodDelete)

	// Profiles and preferences
	api.HandleFunc("/profiles", profilesHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/profiles", profilesHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/profiles/{id}", profilesHandler.Rename).Methods(http.MethodPut)
	api.HandleFunc("/profiles/{id}", profilesHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/preferences", preferencesHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/preferences", preferencesHandler.Update).Methods(http.MethodPut)

	// Poster cache
	api.HandleFunc("/images/poster", imageHandler.GetPoster).Methods(http.MethodGet)
}
