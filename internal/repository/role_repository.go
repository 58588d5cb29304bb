package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create inserts a role with its initial permission grants. The role name is
// unique.
func (r *RoleRepository) Create(ctx context.Context, role *domain.Role, permissionIDs []uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		for _, pid := range permissionIDs {
			rp := domain.RolePermission{RoleID: role.ID, PermissionID: pid}
			if err := tx.Create(&rp).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).Order("name").Find(&roles).Error
	return roles, translateError(err)
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	return translateError(r.db.WithContext(ctx).Save(role).Error)
}

// Delete soft-deletes a role and removes its grants and user bindings
func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Role{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("role_id = ?", id).Delete(&domain.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ?", id).Delete(&domain.UserRole{}).Error
	}))
}

// GrantPermission binds a permission to a role; the pair is unique
func (r *RoleRepository) GrantPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	rp := domain.RolePermission{RoleID: roleID, PermissionID: permissionID}
	return translateError(r.db.WithContext(ctx).Create(&rp).Error)
}

func (r *RoleRepository) RevokePermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&domain.RolePermission{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Permissions returns the permissions granted to a role
func (r *RoleRepository) Permissions(ctx context.Context, roleID uuid.UUID) ([]domain.Permission, error) {
	var permissions []domain.Permission
	err := r.db.WithContext(ctx).
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.code").
		Find(&permissions).Error
	return permissions, translateError(err)
}

// AssignUser binds an external user identity to a role; the pair is unique
func (r *RoleRepository) AssignUser(ctx context.Context, userID string, roleID uuid.UUID) error {
	ur := domain.UserRole{UserID: userID, RoleID: roleID}
	return translateError(r.db.WithContext(ctx).Create(&ur).Error)
}

func (r *RoleRepository) UnassignUser(ctx context.Context, userID string, roleID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&domain.UserRole{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RolesForUser returns the roles bound to an external user identity
func (r *RoleRepository) RolesForUser(ctx context.Context, userID string) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ?", userID).
		Order("roles.name").
		Find(&roles).Error
	return roles, translateError(err)
}

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(ctx context.Context, permission *domain.Permission) error {
	return translateError(r.db.WithContext(ctx).Create(permission).Error)
}

func (r *PermissionRepository) List(ctx context.Context, moduleID *uuid.UUID) ([]domain.Permission, error) {
	var permissions []domain.Permission
	q := r.db.WithContext(ctx)
	if moduleID != nil {
		q = q.Where("module_id = ?", *moduleID)
	}
	err := q.Order("code").Find(&permissions).Error
	return permissions, translateError(err)
}

func (r *PermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Permission{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("permission_id = ?", id).Delete(&domain.RolePermission{}).Error
	}))
}
