package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/notifyd/notifyd/internal/service"
)

// handleSendNotification dispatches a message to a user across their enabled
// channels. Delivery failures are reported inside the 200 response body; only
// an unknown user produces an error status.
func (s *Server) handleSendNotification(w http.ResponseWriter, r *http.Request) {
	var req service.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	result, err := s.dispatchSvc.Send(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err, "failed to send notification")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListDeliveryLog returns recent delivery log entries.
// Accepts an optional ?limit=N query parameter (default 50).
func (s *Server) handleListDeliveryLog(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.dispatchSvc.ListDeliveries(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list delivery log", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list delivery log")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
