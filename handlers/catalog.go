package handlers

import (
	"net/http"
	"strings"

	"marquee/models"
	"marquee/services/catalog"
	"marquee/services/recommend"
	"marquee/services/watchstate"

	"github.com/gorilla/mux"
)

// CatalogHandler serves the cached catalog and the derived shelf views.
type CatalogHandler struct {
	cache     *catalog.Cache
	refresher *catalog.Refresher
	tracker   *watchstate.Service
	defaultID func() string
	shelfSize int
}

func NewCatalogHandler(cache *catalog.Cache, refresher *catalog.Refresher, tracker *watchstate.Service, defaultProfileID func() string, shelfSize int) *CatalogHandler {
	return &CatalogHandler{
		cache:     cache,
		refresher: refresher,
		tracker:   tracker,
		defaultID: defaultProfileID,
		shelfSize: shelfSize,
	}
}

// GetCatalog returns the current snapshot. It does not trigger a fetch;
// POST /api/catalog/refresh does that.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cache.Snapshot())
}

// Refresh forces a refresh cycle and returns the resulting snapshot. A
// failed fetch still answers 200 with whatever snapshot survived, since
// the stale view remains presentable.
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.Refresh(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"snapshot": h.cache.Snapshot(),
			"stale":    true,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot": h.cache.Snapshot(),
		"stale":    false,
	})
}

func (h *CatalogHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cache.TrendingMovies(h.shelfSize))
}

func (h *CatalogHandler) GetExclusive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cache.ExclusiveSeries(h.shelfSize))
}

func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeJSONError(w, "item id is required", http.StatusBadRequest)
		return
	}

	item, ok := h.cache.Lookup(id)
	if !ok {
		writeJSONError(w, "item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeJSONError(w, "item id is required", http.StatusBadRequest)
		return
	}

	item, ok := h.cache.Lookup(id)
	if !ok {
		writeJSONError(w, "item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, recommend.Related(h.cache.Snapshot(), item))
}

// GetRecommendations derives picks for a profile from the current
// snapshot and that profile's watch history. With no profileId query
// parameter the default profile is used.
func (h *CatalogHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	profileID := strings.TrimSpace(r.URL.Query().Get("profileId"))
	if profileID == "" {
		profileID = h.defaultID()
	}

	var historyIDs []string
	if h.tracker != nil {
		historyIDs = h.tracker.HistoryIDs(profileID)
	}

	items := recommend.Derive(h.cache.Snapshot(), historyIDs)
	if items == nil {
		items = []models.MediaItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
