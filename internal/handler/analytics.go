package handler

import (
	"net/http"
)

// GetAnalytics returns the full dashboard snapshot. Any failed read fails
// the whole request with a generic message; no partial snapshot is returned.
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.aggregator.Snapshot(r.Context())
	if err != nil {
		h.logInternalServerError(r, err)
		h.errorResponse(w, r, http.StatusInternalServerError, "failed to fetch analytics")
		return
	}

	h.successResponse(w, r, "fetched analytics", snapshot)
}
