package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// VaultHandler handles HTTP requests for creator-private vault items.
// Every route requires an authenticated actor; the service enforces
// that items are only visible to their creator.
type VaultHandler struct {
	vaultService *service.VaultService
	logger       *zap.Logger
}

func NewVaultHandler(vaultService *service.VaultService, logger *zap.Logger) *VaultHandler {
	return &VaultHandler{vaultService: vaultService, logger: logger}
}

func (h *VaultHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := h.vaultService.ListDocuments(r.Context())
	if err != nil {
		respondDomainError(w, err, "vault documents")
		return
	}
	respondJSON(w, http.StatusOK, documents)
}

func (h *VaultHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}

	document, err := h.vaultService.GetDocument(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "vault document")
		return
	}
	respondJSON(w, http.StatusOK, document)
}

func (h *VaultHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVaultDocumentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	document, err := h.vaultService.CreateDocument(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err, "vault document")
		return
	}
	respondJSON(w, http.StatusCreated, document)
}

func (h *VaultHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID: must be a valid UUID")
		return
	}

	if err := h.vaultService.DeleteDocument(r.Context(), id); err != nil {
		respondDomainError(w, err, "vault document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VaultHandler) ListPasswords(w http.ResponseWriter, r *http.Request) {
	passwords, err := h.vaultService.ListPasswords(r.Context())
	if err != nil {
		respondDomainError(w, err, "vault passwords")
		return
	}
	respondJSON(w, http.StatusOK, passwords)
}

func (h *VaultHandler) GetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid password ID: must be a valid UUID")
		return
	}

	password, err := h.vaultService.GetPassword(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "vault password")
		return
	}
	respondJSON(w, http.StatusOK, password)
}

func (h *VaultHandler) CreatePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVaultPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	password, err := h.vaultService.CreatePassword(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err, "vault password")
		return
	}
	respondJSON(w, http.StatusCreated, password)
}

func (h *VaultHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid password ID: must be a valid UUID")
		return
	}

	var req domain.CreateVaultPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	password, err := h.vaultService.UpdatePassword(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "vault password")
		return
	}
	respondJSON(w, http.StatusOK, password)
}

func (h *VaultHandler) DeletePassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid password ID: must be a valid UUID")
		return
	}

	if err := h.vaultService.DeletePassword(r.Context(), id); err != nil {
		respondDomainError(w, err, "vault password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VaultHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.vaultService.ListCards(r.Context())
	if err != nil {
		respondDomainError(w, err, "vault cards")
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (h *VaultHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid card ID: must be a valid UUID")
		return
	}

	card, err := h.vaultService.GetCard(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "vault card")
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (h *VaultHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVaultCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.vaultService.CreateCard(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err, "vault card")
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (h *VaultHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid card ID: must be a valid UUID")
		return
	}

	if err := h.vaultService.DeleteCard(r.Context(), id); err != nil {
		respondDomainError(w, err, "vault card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
