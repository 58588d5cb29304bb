package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// EnumHandler handles HTTP requests for the open enum registry
type EnumHandler struct {
	enumService *service.EnumService
	logger      *zap.Logger
}

func NewEnumHandler(enumService *service.EnumService, logger *zap.Logger) *EnumHandler {
	return &EnumHandler{enumService: enumService, logger: logger}
}

func (h *EnumHandler) List(w http.ResponseWriter, r *http.Request) {
	enumType := chi.URLParam(r, "enumType")
	if enumType == "" {
		respondWithError(w, http.StatusBadRequest, "Enum type is required")
		return
	}

	options, err := h.enumService.List(r.Context(), enumType)
	if err != nil {
		h.logger.Error("failed to list enum options", zap.Error(err))
		respondDomainError(w, err, "enum options")
		return
	}
	respondJSON(w, http.StatusOK, options)
}

func (h *EnumHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEnumOptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	option, err := h.enumService.Create(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err, "enum option")
		return
	}
	respondJSON(w, http.StatusCreated, option)
}

func (h *EnumHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid enum option ID: must be a valid UUID")
		return
	}

	if err := h.enumService.Deactivate(r.Context(), id); err != nil {
		respondDomainError(w, err, "enum option")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
