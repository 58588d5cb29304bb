package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// VerticalHandler handles HTTP requests for business verticals
type VerticalHandler struct {
	verticalService *service.VerticalService
	logger          *zap.Logger
}

func NewVerticalHandler(verticalService *service.VerticalService, logger *zap.Logger) *VerticalHandler {
	return &VerticalHandler{verticalService: verticalService, logger: logger}
}

func (h *VerticalHandler) List(w http.ResponseWriter, r *http.Request) {
	verticals, err := h.verticalService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list verticals", zap.Error(err))
		respondDomainError(w, err, "verticals")
		return
	}
	respondJSON(w, http.StatusOK, verticals)
}

func (h *VerticalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vertical ID: must be a valid UUID")
		return
	}

	vertical, err := h.verticalService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "vertical")
		return
	}
	respondJSON(w, http.StatusOK, vertical)
}

func (h *VerticalHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Vertical code is required")
		return
	}

	vertical, err := h.verticalService.GetByCode(r.Context(), code)
	if err != nil {
		respondDomainError(w, err, "vertical")
		return
	}
	respondJSON(w, http.StatusOK, vertical)
}

func (h *VerticalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVerticalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	vertical, err := h.verticalService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create vertical", zap.Error(err))
		respondDomainError(w, err, "vertical")
		return
	}

	w.Header().Set("Location", "/api/v1/verticals/"+vertical.ID.String())
	respondJSON(w, http.StatusCreated, vertical)
}

func (h *VerticalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vertical ID: must be a valid UUID")
		return
	}

	var req struct {
		Name        string `json:"name" validate:"required,max=200"`
		Description string `json:"description,omitempty"`
		IsActive    *bool  `json:"isActive,omitempty"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	vertical, err := h.verticalService.Update(r.Context(), id, req.Name, req.Description, req.IsActive)
	if err != nil {
		respondDomainError(w, err, "vertical")
		return
	}
	respondJSON(w, http.StatusOK, vertical)
}

func (h *VerticalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vertical ID: must be a valid UUID")
		return
	}

	if err := h.verticalService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "vertical")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VerticalHandler) AssignUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vertical ID: must be a valid UUID")
		return
	}

	var req struct {
		UserID string `json:"userId" validate:"required,max=100"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.verticalService.AssignUser(r.Context(), id, req.UserID); err != nil {
		respondDomainError(w, err, "vertical assignment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VerticalHandler) UnassignUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vertical ID: must be a valid UUID")
		return
	}
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	if err := h.verticalService.UnassignUser(r.Context(), id, userID); err != nil {
		respondDomainError(w, err, "vertical assignment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VerticalHandler) VerticalsForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	verticals, err := h.verticalService.VerticalsForUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err, "verticals")
		return
	}
	respondJSON(w, http.StatusOK, verticals)
}
