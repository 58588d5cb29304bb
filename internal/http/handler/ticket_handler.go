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

// TicketHandler handles HTTP requests for support tickets
type TicketHandler struct {
	ticketService *service.TicketService
	logger        *zap.Logger
}

func NewTicketHandler(ticketService *service.TicketService, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, logger: logger}
}

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	filter := repository.TicketFilter{}
	if status := r.URL.Query().Get("status"); status != "" {
		ts := domain.TicketStatus(status)
		if !ts.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = &ts
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		tp := domain.TicketPriority(priority)
		if !tp.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid priority filter")
			return
		}
		filter.Priority = &tp
	}
	contactID, ok := parseOptionalUUID(r, "contactId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid contactId: must be a valid UUID")
		return
	}
	filter.ContactID = contactID
	assigneeID, ok := parseOptionalUUID(r, "assigneeId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid assigneeId: must be a valid UUID")
		return
	}
	filter.AssigneeID = assigneeID

	result, err := h.ticketService.List(r.Context(), params, filter)
	if err != nil {
		h.logger.Error("failed to list tickets", zap.Error(err))
		respondDomainError(w, err, "tickets")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	ticket, err := h.ticketService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "ticket")
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// GetByNumber looks a ticket up by its human-readable number, e.g. TCK-000042
func (h *TicketHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		respondWithError(w, http.StatusBadRequest, "Ticket number is required")
		return
	}

	ticket, err := h.ticketService.GetByNumber(r.Context(), number)
	if err != nil {
		respondDomainError(w, err, "ticket")
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTicketRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ticket, err := h.ticketService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create ticket", zap.Error(err))
		respondDomainError(w, err, "ticket")
		return
	}

	w.Header().Set("Location", "/api/v1/tickets/"+ticket.ID.String())
	respondJSON(w, http.StatusCreated, ticket)
}

func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	var req domain.UpdateTicketRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ticket, err := h.ticketService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "ticket")
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

func (h *TicketHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	var req domain.ChangeStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.ticketService.ChangeStatus(r.Context(), id, &req); err != nil {
		respondDomainError(w, err, "ticket")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TicketHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	var req domain.ResolveTicketRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.ticketService.Resolve(r.Context(), id, &req); err != nil {
		respondDomainError(w, err, "ticket")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	if err := h.ticketService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "ticket")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TicketHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	var req struct {
		AssigneeID uuid.UUID `json:"assigneeId" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.ticketService.Assign(r.Context(), id, req.AssigneeID)
	if err != nil {
		respondDomainError(w, err, "ticket assignment")
		return
	}
	respondJSON(w, http.StatusCreated, assignment)
}

func (h *TicketHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	ticketID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}
	assigneeID, err := uuid.Parse(chi.URLParam(r, "assigneeId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid assignee ID: must be a valid UUID")
		return
	}

	if err := h.ticketService.Unassign(r.Context(), ticketID, assigneeID); err != nil {
		respondDomainError(w, err, "ticket assignment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TicketHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	var req domain.CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.ticketService.Comment(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "comment")
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

func (h *TicketHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	comments, err := h.ticketService.Comments(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "comments")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *TicketHandler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ticket ID: must be a valid UUID")
		return
	}

	history, err := h.ticketService.StatusHistory(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "ticket")
		return
	}
	respondJSON(w, http.StatusOK, history)
}
