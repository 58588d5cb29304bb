package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// ProfileHandler handles HTTP requests for user profiles
type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	departmentID, ok := parseOptionalUUID(r, "departmentId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid departmentId: must be a valid UUID")
		return
	}

	result, err := h.profileService.List(r.Context(), params, departmentID)
	if err != nil {
		h.logger.Error("failed to list profiles", zap.Error(err))
		respondDomainError(w, err, "profiles")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Me returns the profile bound to the authenticated identity
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Me(r.Context())
	if err != nil {
		respondDomainError(w, err, "profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	profile, err := h.profileService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create profile", zap.Error(err))
		respondDomainError(w, err, "profile")
		return
	}

	w.Header().Set("Location", "/api/v1/profiles/"+profile.ID.String())
	respondJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	var req domain.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.profileService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	if err := h.profileService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OrgHandler handles HTTP requests for departments and teams
type OrgHandler struct {
	orgService *service.OrgService
	logger     *zap.Logger
}

func NewOrgHandler(orgService *service.OrgService, logger *zap.Logger) *OrgHandler {
	return &OrgHandler{orgService: orgService, logger: logger}
}

type orgUnitRequest struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Description  string     `json:"description,omitempty"`
	DepartmentID *uuid.UUID `json:"departmentId,omitempty"`
}

func (h *OrgHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.orgService.ListDepartments(r.Context())
	if err != nil {
		h.logger.Error("failed to list departments", zap.Error(err))
		respondDomainError(w, err, "departments")
		return
	}
	respondJSON(w, http.StatusOK, departments)
}

func (h *OrgHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid department ID: must be a valid UUID")
		return
	}

	department, err := h.orgService.GetDepartment(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "department")
		return
	}
	respondJSON(w, http.StatusOK, department)
}

func (h *OrgHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req orgUnitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	department, err := h.orgService.CreateDepartment(r.Context(), req.Name, req.Description)
	if err != nil {
		respondDomainError(w, err, "department")
		return
	}
	respondJSON(w, http.StatusCreated, department)
}

func (h *OrgHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid department ID: must be a valid UUID")
		return
	}

	var req orgUnitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	department, err := h.orgService.UpdateDepartment(r.Context(), id, req.Name, req.Description)
	if err != nil {
		respondDomainError(w, err, "department")
		return
	}
	respondJSON(w, http.StatusOK, department)
}

func (h *OrgHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid department ID: must be a valid UUID")
		return
	}

	if err := h.orgService.DeleteDepartment(r.Context(), id); err != nil {
		respondDomainError(w, err, "department")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrgHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.orgService.ListTeams(r.Context())
	if err != nil {
		h.logger.Error("failed to list teams", zap.Error(err))
		respondDomainError(w, err, "teams")
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

func (h *OrgHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID: must be a valid UUID")
		return
	}

	team, err := h.orgService.GetTeam(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "team")
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *OrgHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req orgUnitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	team, err := h.orgService.CreateTeam(r.Context(), req.Name, req.Description, req.DepartmentID)
	if err != nil {
		respondDomainError(w, err, "team")
		return
	}
	respondJSON(w, http.StatusCreated, team)
}

func (h *OrgHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID: must be a valid UUID")
		return
	}

	var req orgUnitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	team, err := h.orgService.UpdateTeam(r.Context(), id, req.Name, req.Description, req.DepartmentID)
	if err != nil {
		respondDomainError(w, err, "team")
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *OrgHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid team ID: must be a valid UUID")
		return
	}

	if err := h.orgService.DeleteTeam(r.Context(), id); err != nil {
		respondDomainError(w, err, "team")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
