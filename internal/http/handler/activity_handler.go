package handler

import (
	"net/http"

	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// ActivityHandler handles HTTP requests for the activity feed
type ActivityHandler struct {
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewActivityHandler(activityService *service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, logger: logger}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	filter := repository.ActivityFilter{
		ActorID:    r.URL.Query().Get("actorId"),
		EntityType: r.URL.Query().Get("entityType"),
	}
	entityID, ok := parseOptionalUUID(r, "entityId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid entityId: must be a valid UUID")
		return
	}
	filter.EntityID = entityID

	events, total, err := h.activityService.List(r.Context(), params, filter)
	if err != nil {
		h.logger.Error("failed to list activity", zap.Error(err))
		respondDomainError(w, err, "activity")
		return
	}
	respondJSON(w, http.StatusOK, domain.NewPagedResponse(events, params, total))
}
