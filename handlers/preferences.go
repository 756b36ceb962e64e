package handlers

import (
	"net/http"
	"strings"

	"marquee/models"
	"marquee/services/preferences"
)

type PreferencesHandler struct {
	prefs     *preferences.Service
	defaultID func() string
}

func NewPreferencesHandler(svc *preferences.Service, defaultProfileID func() string) *PreferencesHandler {
	return &PreferencesHandler{prefs: svc, defaultID: defaultProfileID}
}

func (h *PreferencesHandler) profileID(r *http.Request) string {
	id := strings.TrimSpace(r.URL.Query().Get("profileId"))
	if id == "" {
		id = h.defaultID()
	}
	return id
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.prefs.Get(h.profileID(r)))
}

func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.Preferences
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.prefs.Set(h.profileID(r), req); err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
