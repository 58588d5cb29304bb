package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// EventHandler handles HTTP requests for calendar events
type EventHandler struct {
	eventService *service.EventService
	logger       *zap.Logger
}

func NewEventHandler(eventService *service.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{eventService: eventService, logger: logger}
}

// parseTimeRange reads the from/to query parameters; defaults to the
// current calendar month when absent.
func parseTimeRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, err
		}
		to = parsed
	}
	return from, to, nil
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseTimeRange(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid time range: from/to must be RFC 3339 timestamps")
		return
	}

	events, err := h.eventService.ListBetween(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		respondDomainError(w, err, "events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// ListForProfile returns the events a profile organizes or attends
func (h *EventHandler) ListForProfile(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}
	from, to, err := parseTimeRange(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid time range: from/to must be RFC 3339 timestamps")
		return
	}

	events, err := h.eventService.ListForProfile(r.Context(), profileID, from, to)
	if err != nil {
		respondDomainError(w, err, "events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID: must be a valid UUID")
		return
	}

	event, err := h.eventService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "event")
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	event, err := h.eventService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create event", zap.Error(err))
		respondDomainError(w, err, "event")
		return
	}

	w.Header().Set("Location", "/api/v1/events/"+event.ID.String())
	respondJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID: must be a valid UUID")
		return
	}

	var req domain.CreateEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	event, err := h.eventService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "event")
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID: must be a valid UUID")
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) Invite(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID: must be a valid UUID")
		return
	}

	var req struct {
		ProfileID uuid.UUID `json:"profileId" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	participant, err := h.eventService.Invite(r.Context(), id, req.ProfileID)
	if err != nil {
		respondDomainError(w, err, "event participant")
		return
	}
	respondJSON(w, http.StatusCreated, participant)
}

func (h *EventHandler) Uninvite(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID: must be a valid UUID")
		return
	}
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	if err := h.eventService.Uninvite(r.Context(), eventID, profileID); err != nil {
		respondDomainError(w, err, "event participant")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) Respond(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID: must be a valid UUID")
		return
	}
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	var req domain.RespondEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.eventService.Respond(r.Context(), eventID, profileID, &req); err != nil {
		respondDomainError(w, err, "event participant")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
