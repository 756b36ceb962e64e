package handlers

import (
	"errors"
	"net/http"
	"strings"

	"marquee/services/watchstate"
)

// WatchStateHandler exposes per-profile watch history and the watchlist.
type WatchStateHandler struct {
	tracker   *watchstate.Service
	defaultID func() string
}

func NewWatchStateHandler(tracker *watchstate.Service, defaultProfileID func() string) *WatchStateHandler {
	return &WatchStateHandler{tracker: tracker, defaultID: defaultProfileID}
}

func (h *WatchStateHandler) profileID(r *http.Request) string {
	id := strings.TrimSpace(r.URL.Query().Get("profileId"))
	if id == "" {
		id = h.defaultID()
	}
	return id
}

func (h *WatchStateHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.History(h.profileID(r)))
}

// RecordWatch notes that an item was watched just now, moving it to the
// front of the profile's history.
func (h *WatchStateHandler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.tracker.RecordWatch(h.profileID(r), req.ItemID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, watchstate.ErrItemIDRequired) || errors.Is(err, watchstate.ErrProfileIDRequired) {
			status = http.StatusBadRequest
		}
		writeJSONError(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, h.tracker.History(h.profileID(r)))
}

func (h *WatchStateHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.Watchlist(h.profileID(r)))
}

// ToggleWatchlist adds the item when absent and removes it when present.
func (h *WatchStateHandler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.tracker.ToggleWatchlist(h.profileID(r), req.ItemID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, watchstate.ErrItemIDRequired) || errors.Is(err, watchstate.ErrProfileIDRequired) {
			status = http.StatusBadRequest
		}
		writeJSONError(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result":    result,
		"watchlist": h.tracker.Watchlist(h.profileID(r)),
	})
}
