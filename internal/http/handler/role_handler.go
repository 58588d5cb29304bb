package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// RoleHandler handles HTTP requests for roles and permissions
type RoleHandler struct {
	roleService *service.RoleService
	logger      *zap.Logger
}

func NewRoleHandler(roleService *service.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{roleService: roleService, logger: logger}
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list roles", zap.Error(err))
		respondDomainError(w, err, "roles")
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}

	role, err := h.roleService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "role")
		return
	}
	respondJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.roleService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create role", zap.Error(err))
		respondDomainError(w, err, "role")
		return
	}

	w.Header().Set("Location", "/api/v1/roles/"+role.ID.String())
	respondJSON(w, http.StatusCreated, role)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}

	var req struct {
		Name        string `json:"name" validate:"required,max=100"`
		Description string `json:"description,omitempty"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.roleService.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		respondDomainError(w, err, "role")
		return
	}
	respondJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}

	if err := h.roleService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RoleHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}

	permissions, err := h.roleService.Permissions(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "role")
		return
	}
	respondJSON(w, http.StatusOK, permissions)
}

func (h *RoleHandler) GrantPermission(w http.ResponseWriter, r *http.Request) {
	roleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}
	permissionID, err := uuid.Parse(chi.URLParam(r, "permissionId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid permission ID: must be a valid UUID")
		return
	}

	if err := h.roleService.GrantPermission(r.Context(), roleID, permissionID); err != nil {
		respondDomainError(w, err, "role permission")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RoleHandler) RevokePermission(w http.ResponseWriter, r *http.Request) {
	roleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}
	permissionID, err := uuid.Parse(chi.URLParam(r, "permissionId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid permission ID: must be a valid UUID")
		return
	}

	if err := h.roleService.RevokePermission(r.Context(), roleID, permissionID); err != nil {
		respondDomainError(w, err, "role permission")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RoleHandler) AssignUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}

	var req domain.AssignRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.roleService.AssignUser(r.Context(), id, &req); err != nil {
		respondDomainError(w, err, "role assignment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RoleHandler) UnassignUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid role ID: must be a valid UUID")
		return
	}
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	if err := h.roleService.UnassignUser(r.Context(), id, userID); err != nil {
		respondDomainError(w, err, "role assignment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RoleHandler) RolesForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	roles, err := h.roleService.RolesForUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err, "roles")
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

func (h *RoleHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	moduleID, ok := parseOptionalUUID(r, "moduleId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid moduleId: must be a valid UUID")
		return
	}

	permissions, err := h.roleService.ListPermissions(r.Context(), moduleID)
	if err != nil {
		h.logger.Error("failed to list permissions", zap.Error(err))
		respondDomainError(w, err, "permissions")
		return
	}
	respondJSON(w, http.StatusOK, permissions)
}

func (h *RoleHandler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string     `json:"code" validate:"required,max=100"`
		Name        string     `json:"name" validate:"required,max=200"`
		Description string     `json:"description,omitempty"`
		ModuleID    *uuid.UUID `json:"moduleId,omitempty"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	permission, err := h.roleService.CreatePermission(r.Context(), req.Code, req.Name, req.Description, req.ModuleID)
	if err != nil {
		respondDomainError(w, err, "permission")
		return
	}
	respondJSON(w, http.StatusCreated, permission)
}

func (h *RoleHandler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid permission ID: must be a valid UUID")
		return
	}

	if err := h.roleService.DeletePermission(r.Context(), id); err != nil {
		respondDomainError(w, err, "permission")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
