package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// ModuleHandler handles HTTP requests for extensible modules and their records
type ModuleHandler struct {
	moduleService *service.ModuleService
	logger        *zap.Logger
}

func NewModuleHandler(moduleService *service.ModuleService, logger *zap.Logger) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService, logger: logger}
}

func (h *ModuleHandler) List(w http.ResponseWriter, r *http.Request) {
	modules, err := h.moduleService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list modules", zap.Error(err))
		respondDomainError(w, err, "modules")
		return
	}
	respondJSON(w, http.StatusOK, modules)
}

func (h *ModuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID: must be a valid UUID")
		return
	}

	module, err := h.moduleService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "module")
		return
	}
	respondJSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Module name is required")
		return
	}

	module, err := h.moduleService.GetByName(r.Context(), name)
	if err != nil {
		respondDomainError(w, err, "module")
		return
	}
	respondJSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateModuleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	module, err := h.moduleService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create module", zap.Error(err))
		respondDomainError(w, err, "module")
		return
	}

	w.Header().Set("Location", "/api/v1/modules/"+module.ID.String())
	respondJSON(w, http.StatusCreated, module)
}

func (h *ModuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID: must be a valid UUID")
		return
	}

	var req struct {
		Label       string `json:"label,omitempty" validate:"max=200"`
		Description string `json:"description,omitempty"`
		Icon        string `json:"icon,omitempty" validate:"max=100"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	module, err := h.moduleService.Update(r.Context(), id, req.Label, req.Description, req.Icon)
	if err != nil {
		respondDomainError(w, err, "module")
		return
	}
	respondJSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID: must be a valid UUID")
		return
	}

	if err := h.moduleService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "module")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ModuleHandler) AddField(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID: must be a valid UUID")
		return
	}

	var req domain.CreateModuleFieldRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	field, err := h.moduleService.AddField(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "module field")
		return
	}
	respondJSON(w, http.StatusCreated, field)
}

func (h *ModuleHandler) RemoveField(w http.ResponseWriter, r *http.Request) {
	moduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID: must be a valid UUID")
		return
	}
	fieldID, err := uuid.Parse(chi.URLParam(r, "fieldId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid field ID: must be a valid UUID")
		return
	}

	if err := h.moduleService.RemoveField(r.Context(), moduleID, fieldID); err != nil {
		respondDomainError(w, err, "module field")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ModuleHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	moduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID: must be a valid UUID")
		return
	}
	params := parseListParams(r)

	result, err := h.moduleService.ListRecords(r.Context(), moduleID, params)
	if err != nil {
		h.logger.Error("failed to list module records", zap.Error(err))
		respondDomainError(w, err, "module records")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CreateRecord validates the payload against the module's field definitions
func (h *ModuleHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	moduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid module ID: must be a valid UUID")
		return
	}

	var req domain.CreateModuleRecordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.moduleService.CreateRecord(r.Context(), moduleID, &req)
	if err != nil {
		respondDomainError(w, err, "module record")
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

func (h *ModuleHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "recordId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID: must be a valid UUID")
		return
	}

	record, err := h.moduleService.GetRecord(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "module record")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (h *ModuleHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "recordId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID: must be a valid UUID")
		return
	}

	var req domain.CreateModuleRecordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.moduleService.UpdateRecord(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "module record")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (h *ModuleHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "recordId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID: must be a valid UUID")
		return
	}

	if err := h.moduleService.DeleteRecord(r.Context(), id); err != nil {
		respondDomainError(w, err, "module record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignRecord shares a record with a profile or a team
func (h *ModuleHandler) AssignRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID: must be a valid UUID")
		return
	}

	var req domain.AssignModuleRecordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.moduleService.AssignRecord(r.Context(), recordID, &req)
	if err != nil {
		respondDomainError(w, err, "record assignment")
		return
	}
	respondJSON(w, http.StatusCreated, assignment)
}

func (h *ModuleHandler) UnassignRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID: must be a valid UUID")
		return
	}
	assignmentID, err := uuid.Parse(chi.URLParam(r, "assignmentId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid assignment ID: must be a valid UUID")
		return
	}

	if err := h.moduleService.UnassignRecord(r.Context(), recordID, assignmentID); err != nil {
		respondDomainError(w, err, "record assignment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ModuleHandler) RecordAssignments(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "recordId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid record ID: must be a valid UUID")
		return
	}

	assignments, err := h.moduleService.RecordAssignments(r.Context(), recordID)
	if err != nil {
		respondDomainError(w, err, "record assignments")
		return
	}
	respondJSON(w, http.StatusOK, assignments)
}
