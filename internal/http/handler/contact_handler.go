package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// ContactHandler handles HTTP requests for CRM contacts
type ContactHandler struct {
	contactService *service.ContactService
	logger         *zap.Logger
}

func NewContactHandler(contactService *service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contactService: contactService, logger: logger}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	result, err := h.contactService.List(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list contacts", zap.Error(err))
		respondDomainError(w, err, "contacts")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID: must be a valid UUID")
		return
	}

	contact, err := h.contactService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "contact")
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create contact", zap.Error(err))
		respondDomainError(w, err, "contact")
		return
	}

	w.Header().Set("Location", "/api/v1/contacts/"+contact.ID.String())
	respondJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID: must be a valid UUID")
		return
	}

	var req domain.UpdateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "contact")
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID: must be a valid UUID")
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompanyHandler handles HTTP requests for CRM companies
type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, logger: logger}
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	result, err := h.companyService.List(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list companies", zap.Error(err))
		respondDomainError(w, err, "companies")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID: must be a valid UUID")
		return
	}

	company, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "company")
		return
	}
	respondJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCompanyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	company, err := h.companyService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create company", zap.Error(err))
		respondDomainError(w, err, "company")
		return
	}

	w.Header().Set("Location", "/api/v1/companies/"+company.ID.String())
	respondJSON(w, http.StatusCreated, company)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID: must be a valid UUID")
		return
	}

	var req domain.UpdateCompanyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	company, err := h.companyService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "company")
		return
	}
	respondJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID: must be a valid UUID")
		return
	}

	if err := h.companyService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "company")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CompanyHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID: must be a valid UUID")
		return
	}

	contacts, err := h.companyService.Contacts(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "company")
		return
	}
	respondJSON(w, http.StatusOK, contacts)
}

func (h *CompanyHandler) LinkContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID: must be a valid UUID")
		return
	}

	var req domain.LinkCompanyContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	link, err := h.companyService.LinkContact(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "company contact")
		return
	}
	respondJSON(w, http.StatusCreated, link)
}

func (h *CompanyHandler) UnlinkContact(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID: must be a valid UUID")
		return
	}
	contactID, err := uuid.Parse(chi.URLParam(r, "contactId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID: must be a valid UUID")
		return
	}

	if err := h.companyService.UnlinkContact(r.Context(), companyID, contactID); err != nil {
		respondDomainError(w, err, "company contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
