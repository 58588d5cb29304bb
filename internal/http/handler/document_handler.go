package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// DocumentHandler handles HTTP requests for shared documents
type DocumentHandler struct {
	documentService *service.DocumentService
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, logger: logger}
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}

	document, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "document")
		return
	}
	respondJSON(w, http.StatusOK, document)
}

func (h *DocumentHandler) ListForProfile(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	documents, err := h.documentService.ListForProfile(r.Context(), profileID)
	if err != nil {
		respondDomainError(w, err, "documents")
		return
	}
	respondJSON(w, http.StatusOK, documents)
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title" validate:"required,max=200"`
		StoragePath string `json:"storagePath" validate:"required,max=500"`
		MimeType    string `json:"mimeType,omitempty" validate:"max=100"`
		Size        int64  `json:"size" validate:"min=0"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	document, err := h.documentService.Create(r.Context(), req.Title, req.StoragePath, req.MimeType, req.Size)
	if err != nil {
		h.logger.Error("failed to create document", zap.Error(err))
		respondDomainError(w, err, "document")
		return
	}

	w.Header().Set("Location", "/api/v1/documents/"+document.ID.String())
	respondJSON(w, http.StatusCreated, document)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}

	var req struct {
		ProfileID uuid.UUID `json:"profileId" validate:"required"`
		CanEdit   bool      `json:"canEdit"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.documentService.Share(r.Context(), id, req.ProfileID, req.CanEdit)
	if err != nil {
		respondDomainError(w, err, "document share")
		return
	}
	respondJSON(w, http.StatusCreated, assignment)
}

func (h *DocumentHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	if err := h.documentService.Unshare(r.Context(), documentID, profileID); err != nil {
		respondDomainError(w, err, "document share")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
