package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

// EnumRepository manages the open vocabularies (task status, task priority).
// Closed enumerations live in the domain package as typed constants.
type EnumRepository struct {
	db *gorm.DB
}

func NewEnumRepository(db *gorm.DB) *EnumRepository {
	return &EnumRepository{db: db}
}

// Create adds a vocabulary value; the (type, value) pair is unique
func (r *EnumRepository) Create(ctx context.Context, option *domain.EnumOption) error {
	return translateError(r.db.WithContext(ctx).Create(option).Error)
}

func (r *EnumRepository) List(ctx context.Context, enumType string) ([]domain.EnumOption, error) {
	var options []domain.EnumOption
	err := r.db.WithContext(ctx).
		Where("enum_type = ?", enumType).
		Order("sort_order, value").
		Find(&options).Error
	return options, translateError(err)
}

// IsValid reports whether value is an active member of the vocabulary
func (r *EnumRepository) IsValid(ctx context.Context, enumType, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.EnumOption{}).
		Where("enum_type = ? AND value = ? AND is_active = ?", enumType, value, true).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// Deactivate retires a value without breaking rows that already carry it
func (r *EnumRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&domain.EnumOption{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Seed inserts default vocabulary values when the type is empty
func (r *EnumRepository) Seed(ctx context.Context, enumType string, values []string) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.EnumOption{}).
			Where("enum_type = ?", enumType).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for i, v := range values {
			opt := domain.EnumOption{
				EnumType:  enumType,
				Value:     v,
				SortOrder: i,
				IsActive:  true,
			}
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}
