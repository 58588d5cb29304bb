package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type VerticalRepository struct {
	db *gorm.DB
}

func NewVerticalRepository(db *gorm.DB) *VerticalRepository {
	return &VerticalRepository{db: db}
}

// Create inserts a vertical. The code is unique.
func (r *VerticalRepository) Create(ctx context.Context, vertical *domain.Vertical) error {
	return translateError(r.db.WithContext(ctx).Create(vertical).Error)
}

func (r *VerticalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vertical, error) {
	var vertical domain.Vertical
	err := r.db.WithContext(ctx).First(&vertical, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &vertical, nil
}

func (r *VerticalRepository) GetByCode(ctx context.Context, code string) (*domain.Vertical, error) {
	var vertical domain.Vertical
	err := r.db.WithContext(ctx).First(&vertical, "code = ?", code).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &vertical, nil
}

func (r *VerticalRepository) List(ctx context.Context) ([]domain.Vertical, error) {
	var verticals []domain.Vertical
	err := r.db.WithContext(ctx).Order("code").Find(&verticals).Error
	return verticals, translateError(err)
}

func (r *VerticalRepository) Update(ctx context.Context, vertical *domain.Vertical) error {
	return translateError(r.db.WithContext(ctx).Save(vertical).Error)
}

// Delete soft-deletes a vertical and removes user assignments; leads, tasks
// and announcements keep existing unscoped
func (r *VerticalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Vertical{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("vertical_id = ?", id).Delete(&domain.UserVertical{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Lead{}).Where("vertical_id = ?", id).
			Update("vertical_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Task{}).Where("vertical_id = ?", id).
			Update("vertical_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Announcement{}).Where("vertical_id = ?", id).
			Update("vertical_id", nil).Error
	}))
}

// AssignUser binds an external user identity to a vertical; the pair is
// unique
func (r *VerticalRepository) AssignUser(ctx context.Context, userID string, verticalID uuid.UUID) error {
	uv := domain.UserVertical{UserID: userID, VerticalID: verticalID}
	return translateError(r.db.WithContext(ctx).Create(&uv).Error)
}

func (r *VerticalRepository) UnassignUser(ctx context.Context, userID string, verticalID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND vertical_id = ?", userID, verticalID).
		Delete(&domain.UserVertical{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// VerticalsForUser returns the verticals an external user identity belongs to
func (r *VerticalRepository) VerticalsForUser(ctx context.Context, userID string) ([]domain.Vertical, error) {
	var verticals []domain.Vertical
	err := r.db.WithContext(ctx).
		Joins("JOIN user_verticals uv ON uv.vertical_id = verticals.id").
		Where("uv.user_id = ?", userID).
		Order("verticals.code").
		Find(&verticals).Error
	return verticals, translateError(err)
}
