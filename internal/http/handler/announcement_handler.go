package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// AnnouncementHandler handles HTTP requests for company announcements
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
	logger              *zap.Logger
}

func NewAnnouncementHandler(announcementService *service.AnnouncementService, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService, logger: logger}
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	result, err := h.announcementService.List(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list announcements", zap.Error(err))
		respondDomainError(w, err, "announcements")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListActive returns published, unexpired announcements visible to the
// caller, optionally scoped to a vertical
func (h *AnnouncementHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	verticalID, ok := parseOptionalUUID(r, "verticalId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid verticalId: must be a valid UUID")
		return
	}

	announcements, err := h.announcementService.ListActive(r.Context(), verticalID)
	if err != nil {
		respondDomainError(w, err, "announcements")
		return
	}
	respondJSON(w, http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid announcement ID: must be a valid UUID")
		return
	}

	announcement, err := h.announcementService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "announcement")
		return
	}
	respondJSON(w, http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAnnouncementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	announcement, err := h.announcementService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create announcement", zap.Error(err))
		respondDomainError(w, err, "announcement")
		return
	}

	w.Header().Set("Location", "/api/v1/announcements/"+announcement.ID.String())
	respondJSON(w, http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid announcement ID: must be a valid UUID")
		return
	}

	var req domain.CreateAnnouncementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	announcement, err := h.announcementService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "announcement")
		return
	}
	respondJSON(w, http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid announcement ID: must be a valid UUID")
		return
	}

	if err := h.announcementService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "announcement")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkViewed records that the acting identity has seen the announcement
func (h *AnnouncementHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid announcement ID: must be a valid UUID")
		return
	}

	if err := h.announcementService.MarkViewed(r.Context(), id); err != nil {
		respondDomainError(w, err, "announcement")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AnnouncementHandler) ViewCount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid announcement ID: must be a valid UUID")
		return
	}

	count, err := h.announcementService.ViewCount(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "announcement")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"views": count})
}
