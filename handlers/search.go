package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"marquee/models"
	"marquee/services/search"
)

// SearchHandler answers direct search requests. The debounced input
// path lives on the events endpoint; this one is for clients that do
// their own debouncing.
type SearchHandler struct {
	searcher *search.Searcher
}

func NewSearchHandler(searcher *search.Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// Search returns ranked matches for a query. Queries of two characters
// or fewer are treated as cleared input and return no results.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(query) <= 2 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"visible": false,
			"results": []models.MediaItem{},
		})
		return
	}

	results := h.searcher.Search(query)
	if results == nil {
		results = []models.MediaItem{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"visible": true,
		"results": results,
	})
}
