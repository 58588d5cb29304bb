package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// ThreadHandler handles HTTP requests for message threads
type ThreadHandler struct {
	threadService *service.ThreadService
	logger        *zap.Logger
}

func NewThreadHandler(threadService *service.ThreadService, logger *zap.Logger) *ThreadHandler {
	return &ThreadHandler{threadService: threadService, logger: logger}
}

func (h *ThreadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateThreadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	thread, err := h.threadService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create thread", zap.Error(err))
		respondDomainError(w, err, "thread")
		return
	}

	w.Header().Set("Location", "/api/v1/threads/"+thread.ID.String())
	respondJSON(w, http.StatusCreated, thread)
}

func (h *ThreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid thread ID: must be a valid UUID")
		return
	}

	thread, err := h.threadService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "thread")
		return
	}
	respondJSON(w, http.StatusOK, thread)
}

// ListForProfile returns the threads a profile participates in
func (h *ThreadHandler) ListForProfile(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}
	params := parseListParams(r)

	result, err := h.threadService.ListForProfile(r.Context(), profileID, params)
	if err != nil {
		h.logger.Error("failed to list threads", zap.Error(err))
		respondDomainError(w, err, "threads")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ThreadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid thread ID: must be a valid UUID")
		return
	}

	if err := h.threadService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "thread")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ThreadHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid thread ID: must be a valid UUID")
		return
	}

	var req struct {
		ProfileID uuid.UUID `json:"profileId" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.threadService.AddParticipant(r.Context(), id, req.ProfileID); err != nil {
		respondDomainError(w, err, "thread participant")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ThreadHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	threadID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid thread ID: must be a valid UUID")
		return
	}
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	if err := h.threadService.RemoveParticipant(r.Context(), threadID, profileID); err != nil {
		respondDomainError(w, err, "thread participant")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostMessage appends a message; only participants may post
func (h *ThreadHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid thread ID: must be a valid UUID")
		return
	}

	var req domain.PostMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	message, err := h.threadService.PostMessage(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "message")
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

func (h *ThreadHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid thread ID: must be a valid UUID")
		return
	}
	params := parseListParams(r)

	result, err := h.threadService.Messages(r.Context(), id, params)
	if err != nil {
		respondDomainError(w, err, "messages")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
