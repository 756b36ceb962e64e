package handlers

import (
	"net/http"
	"strings"

	"marquee/services/lazyload"

	"github.com/gabriel-vasile/mimetype"
)

// ImageHandler serves posters out of the resolver's disk cache,
// fetching on demand when a poster has not been resolved yet.
type ImageHandler struct {
	resolver *lazyload.PosterResolver
}

func NewImageHandler(resolver *lazyload.PosterResolver) *ImageHandler {
	return &ImageHandler{resolver: resolver}
}

func (h *ImageHandler) GetPoster(w http.ResponseWriter, r *http.Request) {
	src := strings.TrimSpace(r.URL.Query().Get("src"))
	if src == "" {
		writeJSONError(w, "src is required", http.StatusBadRequest)
		return
	}

	path, ok := h.resolver.CachedPath(src)
	if !ok {
		if err := h.resolver.Resolve(r.Context(), src); err != nil {
			writeJSONError(w, "poster unavailable", http.StatusBadGateway)
			return
		}
		path, ok = h.resolver.CachedPath(src)
		if !ok {
			writeJSONError(w, "poster unavailable", http.StatusBadGateway)
			return
		}
	}

	mime, err := mimetype.DetectFile(path)
	if err == nil {
		w.Header().Set("Content-Type", mime.String())
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}
