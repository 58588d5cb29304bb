package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// CallHandler handles HTTP requests for call logs
type CallHandler struct {
	callService *service.CallService
	logger      *zap.Logger
}

func NewCallHandler(callService *service.CallService, logger *zap.Logger) *CallHandler {
	return &CallHandler{callService: callService, logger: logger}
}

func (h *CallHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	filter := repository.CallFilter{}
	leadID, ok := parseOptionalUUID(r, "leadId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid leadId: must be a valid UUID")
		return
	}
	filter.LeadID = leadID
	contactID, ok := parseOptionalUUID(r, "contactId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid contactId: must be a valid UUID")
		return
	}
	filter.ContactID = contactID
	callerID, ok := parseOptionalUUID(r, "callerId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid callerId: must be a valid UUID")
		return
	}
	filter.CallerID = callerID
	if callType := r.URL.Query().Get("callType"); callType != "" {
		ct := domain.CallType(callType)
		if !ct.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid callType filter")
			return
		}
		filter.CallType = &ct
	}

	result, err := h.callService.List(r.Context(), params, filter)
	if err != nil {
		h.logger.Error("failed to list calls", zap.Error(err))
		respondDomainError(w, err, "calls")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *CallHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid call ID: must be a valid UUID")
		return
	}

	call, err := h.callService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "call")
		return
	}
	respondJSON(w, http.StatusOK, call)
}

func (h *CallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCallRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	call, err := h.callService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create call", zap.Error(err))
		respondDomainError(w, err, "call")
		return
	}

	w.Header().Set("Location", "/api/v1/calls/"+call.ID.String())
	respondJSON(w, http.StatusCreated, call)
}

func (h *CallHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid call ID: must be a valid UUID")
		return
	}

	if err := h.callService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "call")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CallHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid call ID: must be a valid UUID")
		return
	}

	var req domain.CreateCallNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, err := h.callService.AddNote(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "call note")
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (h *CallHandler) RemoveNote(w http.ResponseWriter, r *http.Request) {
	callID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid call ID: must be a valid UUID")
		return
	}
	noteID, err := uuid.Parse(chi.URLParam(r, "noteId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid note ID: must be a valid UUID")
		return
	}

	if err := h.callService.RemoveNote(r.Context(), callID, noteID); err != nil {
		respondDomainError(w, err, "call note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
