package handlers

import (
	"errors"
	"net/http"
	"strings"

	"marquee/services/profiles"

	"github.com/gorilla/mux"
)

type ProfilesHandler struct {
	profiles *profiles.Service
}

func NewProfilesHandler(svc *profiles.Service) *ProfilesHandler {
	return &ProfilesHandler{profiles: svc}
}

func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.profiles.List())
}

func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profiles.Create(req.Name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, profiles.ErrNameRequired) {
			status = http.StatusBadRequest
		}
		writeJSONError(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfilesHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profiles.Rename(id, req.Name)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, profiles.ErrNameRequired):
			status = http.StatusBadRequest
		case errors.Is(err, profiles.ErrNotFound):
			status = http.StatusNotFound
		}
		writeJSONError(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])

	if err := h.profiles.Delete(id); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, profiles.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, profiles.ErrLastProfile):
			status = http.StatusConflict
		}
		writeJSONError(w, err.Error(), status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
