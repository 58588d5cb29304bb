package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// LeadHandler handles HTTP requests for leads, conversions and quotations
type LeadHandler struct {
	leadService *service.LeadService
	logger      *zap.Logger
}

func NewLeadHandler(leadService *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{leadService: leadService, logger: logger}
}

func parseOptionalUUID(r *http.Request, key string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	filter := repository.LeadFilter{}
	if status := r.URL.Query().Get("status"); status != "" {
		ls := domain.LeadStatus(status)
		if !ls.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = &ls
	}
	ownerID, ok := parseOptionalUUID(r, "ownerId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid ownerId: must be a valid UUID")
		return
	}
	filter.OwnerID = ownerID
	verticalID, ok := parseOptionalUUID(r, "verticalId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid verticalId: must be a valid UUID")
		return
	}
	filter.VerticalID = verticalID
	companyID, ok := parseOptionalUUID(r, "companyId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid companyId: must be a valid UUID")
		return
	}
	filter.CompanyID = companyID

	sort := repository.DefaultSortConfig()
	if field := r.URL.Query().Get("sortBy"); field != "" {
		sort.Field = field
	}
	if order := r.URL.Query().Get("sortOrder"); order == "asc" {
		sort.Order = repository.SortOrderAsc
	}

	result, err := h.leadService.List(r.Context(), params, filter, sort)
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		respondDomainError(w, err, "leads")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	lead, err := h.leadService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "lead")
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lead, err := h.leadService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create lead", zap.Error(err))
		respondDomainError(w, err, "lead")
		return
	}

	w.Header().Set("Location", "/api/v1/leads/"+lead.ID.String())
	respondJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.UpdateLeadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lead, err := h.leadService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "lead")
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.ChangeStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.leadService.ChangeStatus(r.Context(), id, &req); err != nil {
		respondDomainError(w, err, "lead")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Convert creates the lead's opportunity; a second conversion returns 409
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.ConvertLeadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	opportunity, err := h.leadService.Convert(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "lead")
		return
	}
	respondJSON(w, http.StatusCreated, opportunity)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	if err := h.leadService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "lead")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	if err := h.leadService.Restore(r.Context(), id); err != nil {
		respondDomainError(w, err, "lead")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	history, err := h.leadService.StatusHistory(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "lead")
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *LeadHandler) IssueQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.CreateQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	req.LeadID = id
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quotation, err := h.leadService.IssueQuotation(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err, "quotation")
		return
	}
	respondJSON(w, http.StatusCreated, quotation)
}

func (h *LeadHandler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	quotations, err := h.leadService.Quotations(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "lead")
		return
	}
	respondJSON(w, http.StatusOK, quotations)
}
