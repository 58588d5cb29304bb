package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// NotificationHandler handles HTTP requests for the acting identity's
// notification feed
type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	result, err := h.notificationService.List(r.Context(), params, unreadOnly)
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err))
		respondDomainError(w, err, "notifications")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid notification ID: must be a valid UUID")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), id); err != nil {
		respondDomainError(w, err, "notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.MarkAllRead(r.Context())
	if err != nil {
		respondDomainError(w, err, "notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"marked": count})
}

func (h *NotificationHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	preferences, err := h.notificationService.Preferences(r.Context())
	if err != nil {
		respondDomainError(w, err, "notification preferences")
		return
	}
	respondJSON(w, http.StatusOK, preferences)
}

func (h *NotificationHandler) SetPreference(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string `json:"type" validate:"required,max=50"`
		Enabled bool   `json:"enabled"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.notificationService.SetPreference(r.Context(), req.Type, req.Enabled); err != nil {
		respondDomainError(w, err, "notification preference")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
