package handlers

import (
	"net/http"
	"strconv"

	"marquee/services/notify"

	"github.com/gorilla/mux"
)

// NotificationsHandler lists active notifications and handles manual
// dismissal. Expiry is otherwise automatic.
type NotificationsHandler struct {
	queue *notify.Queue
}

func NewNotificationsHandler(queue *notify.Queue) *NotificationsHandler {
	return &NotificationsHandler{queue: queue}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.queue.Active())
}

func (h *NotificationsHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSONError(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	if !h.queue.Dismiss(id) {
		writeJSONError(w, "notification not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
