package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("value must be positive")
	}
	return n, nil
}

// recordActivity appends an audit record after a successful mutation.
// The audit write is best effort: a failure is logged and the request
// still succeeds.
func (h *Handler) recordActivity(r *http.Request, action, entity string, entityID int64, details string) {
	userID, err := h.sessionUserID(r)
	if err != nil {
		slog.Error("cannot resolve actor for activity record", "error", err)
		return
	}

	activity := &domain.Activity{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}

	if err := h.repository.CreateActivity(activity); err != nil {
		slog.Error("failed to record activity", "action", action, "entity", entity, "entityId", entityID, "error", err)
	}
}

func (h *Handler) GetRecentActivities(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if param := r.URL.Query().Get("limit"); param != "" {
		if parsed, err := parsePositiveInt(param); err == nil {
			limit = parsed
		}
	}

	activities, err := h.repository.GetRecentActivities(limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched activities", activities)
}
