package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type ModuleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// Create inserts a module with its field definitions. The module name is
// unique, field keys are unique within the module.
func (r *ModuleRepository) Create(ctx context.Context, module *domain.Module) error {
	return translateError(r.db.WithContext(ctx).Create(module).Error)
}

func (r *ModuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Module, error) {
	var module domain.Module
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("module_fields.sort_order")
		}).
		First(&module, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &module, nil
}

func (r *ModuleRepository) GetByName(ctx context.Context, name string) (*domain.Module, error) {
	var module domain.Module
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("module_fields.sort_order")
		}).
		First(&module, "name = ?", name).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &module, nil
}

func (r *ModuleRepository) List(ctx context.Context) ([]domain.Module, error) {
	var modules []domain.Module
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("module_fields.sort_order")
		}).
		Order("name").
		Find(&modules).Error
	return modules, translateError(err)
}

func (r *ModuleRepository) Update(ctx context.Context, module *domain.Module) error {
	return translateError(r.db.WithContext(ctx).Save(module).Error)
}

// Delete soft-deletes a module and takes its fields, records and record
// grants with it
func (r *ModuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Module{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("module_id = ?", id).Delete(&domain.ModuleField{}).Error; err != nil {
			return err
		}
		var records []domain.ModuleRecord
		if err := tx.Where("module_id = ?", id).Find(&records).Error; err != nil {
			return err
		}
		for _, rec := range records {
			if err := tx.Where("record_id = ?", rec.ID).
				Delete(&domain.ModuleRecordAssignment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("module_id = ?", id).Delete(&domain.ModuleRecord{}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Role{}).Where("module_id = ?", id).
			Update("module_id", nil).Error
	}))
}

func (r *ModuleRepository) AddField(ctx context.Context, field *domain.ModuleField) error {
	return translateError(r.db.WithContext(ctx).Create(field).Error)
}

func (r *ModuleRepository) RemoveField(ctx context.Context, moduleID, fieldID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND module_id = ?", fieldID, moduleID).
		Delete(&domain.ModuleField{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type ModuleRecordRepository struct {
	db *gorm.DB
}

func NewModuleRecordRepository(db *gorm.DB) *ModuleRecordRepository {
	return &ModuleRecordRepository{db: db}
}

func (r *ModuleRecordRepository) Create(ctx context.Context, record *domain.ModuleRecord) error {
	return translateError(r.db.WithContext(ctx).Create(record).Error)
}

func (r *ModuleRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModuleRecord, error) {
	var record domain.ModuleRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (r *ModuleRecordRepository) ListByModule(ctx context.Context, moduleID uuid.UUID, params domain.ListParams) ([]domain.ModuleRecord, int64, error) {
	var records []domain.ModuleRecord
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.ModuleRecord{}).Where("module_id = ?", moduleID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&records).Error
	return records, total, translateError(err)
}

func (r *ModuleRecordRepository) Update(ctx context.Context, record *domain.ModuleRecord) error {
	return translateError(r.db.WithContext(ctx).Save(record).Error)
}

// Delete soft-deletes a record and removes its grants
func (r *ModuleRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.ModuleRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("record_id = ?", id).Delete(&domain.ModuleRecordAssignment{}).Error
	}))
}

// Assign grants a profile or team access to a record. Exactly one grantee
// must be set; the check constraint backs this up in the database.
func (r *ModuleRecordRepository) Assign(ctx context.Context, assignment *domain.ModuleRecordAssignment) error {
	if !assignment.Targets() {
		return domain.ErrOrphanAssignment
	}
	return translateError(r.db.WithContext(ctx).Create(assignment).Error)
}

func (r *ModuleRecordRepository) Unassign(ctx context.Context, recordID, assignmentID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND record_id = ?", assignmentID, recordID).
		Delete(&domain.ModuleRecordAssignment{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ModuleRecordRepository) ListAssignments(ctx context.Context, recordID uuid.UUID) ([]domain.ModuleRecordAssignment, error) {
	var assignments []domain.ModuleRecordAssignment
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Team").
		Where("record_id = ?", recordID).
		Find(&assignments).Error
	return assignments, translateError(err)
}
