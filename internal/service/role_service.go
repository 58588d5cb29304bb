package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// RoleService manages roles, permission grants and user-role bindings
type RoleService struct {
	roleRepo       *repository.RoleRepository
	permissionRepo *repository.PermissionRepository
	activity       *ActivityService
	logger         *zap.Logger
}

func NewRoleService(
	roleRepo *repository.RoleRepository,
	permissionRepo *repository.PermissionRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		activity:       activity,
		logger:         logger,
	}
}

func (s *RoleService) Create(ctx context.Context, req *domain.CreateRoleRequest) (*domain.Role, error) {
	role := &domain.Role{
		Name:        req.Name,
		Description: req.Description,
		ModuleID:    req.ModuleID,
	}
	role.CreatedBy = actorSubject(ctx)

	if err := s.roleRepo.Create(ctx, role, req.PermissionIDs); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "created", "role", &role.ID, role.Name)
	return role, nil
}

func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return s.roleRepo.GetByID(ctx, id)
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roleRepo.List(ctx)
}

func (s *RoleService) Update(ctx context.Context, id uuid.UUID, name, description string) (*domain.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Name = name
	role.Description = description
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "role", &id, "")
	return nil
}

func (s *RoleService) GrantPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	return s.roleRepo.GrantPermission(ctx, roleID, permissionID)
}

func (s *RoleService) RevokePermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	return s.roleRepo.RevokePermission(ctx, roleID, permissionID)
}

func (s *RoleService) Permissions(ctx context.Context, roleID uuid.UUID) ([]domain.Permission, error) {
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		return nil, err
	}
	return s.roleRepo.Permissions(ctx, roleID)
}

// AssignUser binds an external user identity to a role
func (s *RoleService) AssignUser(ctx context.Context, roleID uuid.UUID, req *domain.AssignRoleRequest) error {
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		return err
	}
	if err := s.roleRepo.AssignUser(ctx, req.UserID, roleID); err != nil {
		return err
	}
	s.activity.Record(ctx, "role_assigned", "role", &roleID, req.UserID)
	return nil
}

func (s *RoleService) UnassignUser(ctx context.Context, roleID uuid.UUID, userID string) error {
	return s.roleRepo.UnassignUser(ctx, userID, roleID)
}

func (s *RoleService) RolesForUser(ctx context.Context, userID string) ([]domain.Role, error) {
	return s.roleRepo.RolesForUser(ctx, userID)
}

func (s *RoleService) CreatePermission(ctx context.Context, code, name, description string, moduleID *uuid.UUID) (*domain.Permission, error) {
	permission := &domain.Permission{
		Code:        code,
		Name:        name,
		Description: description,
		ModuleID:    moduleID,
	}
	permission.CreatedBy = actorSubject(ctx)

	if err := s.permissionRepo.Create(ctx, permission); err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}
	return permission, nil
}

func (s *RoleService) ListPermissions(ctx context.Context, moduleID *uuid.UUID) ([]domain.Permission, error) {
	return s.permissionRepo.List(ctx, moduleID)
}

func (s *RoleService) DeletePermission(ctx context.Context, id uuid.UUID) error {
	return s.permissionRepo.Delete(ctx, id)
}
