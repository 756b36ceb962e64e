package handlers

import (
	"net/http"
	"strings"

	"marquee/models"
	"marquee/services/lazyload"
	"marquee/services/pagination"
	"marquee/services/search"
)

// EventsHandler translates client interaction events into calls on the
// coordination services. These endpoints acknowledge receipt; the
// resulting catalog changes flow out through the render sink.
type EventsHandler struct {
	pager      *pagination.Controller
	dispatcher *search.Dispatcher
	lazy       *lazyload.Coordinator
}

func NewEventsHandler(pager *pagination.Controller, dispatcher *search.Dispatcher, lazy *lazyload.Coordinator) *EventsHandler {
	return &EventsHandler{pager: pager, dispatcher: dispatcher, lazy: lazy}
}

// Scroll handles a near-bottom scroll event for one stream. Requests
// while a page fetch is already in flight are acknowledged and ignored.
func (h *EventsHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stream string `json:"stream"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mediaType, ok := models.ParseMediaType(req.Stream)
	if !ok {
		writeJSONError(w, "unknown stream", http.StatusBadRequest)
		return
	}

	h.pager.RequestNextPage(r.Context(), mediaType)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"stream":   mediaType,
		"page":     h.pager.Page(mediaType),
		"inFlight": h.pager.InFlight(mediaType),
	})
}

// SearchInput feeds one keystroke's worth of query text to the
// debounced dispatcher.
func (h *EventsHandler) SearchInput(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.dispatcher.OnInput(req.Query)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// Visible reports that a registered placeholder scrolled into the
// viewport margin.
func (h *EventsHandler) Visible(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlaceholderID string `json:"placeholderId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(req.PlaceholderID)
	if id == "" {
		writeJSONError(w, "placeholder id is required", http.StatusBadRequest)
		return
	}

	resolved := h.lazy.OnVisible(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]bool{"resolved": resolved})
}
