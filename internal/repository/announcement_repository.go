package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	return translateError(r.db.WithContext(ctx).Create(announcement).Error)
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	var announcement domain.Announcement
	err := r.db.WithContext(ctx).Preload("Vertical").First(&announcement, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &announcement, nil
}

// ListActive returns published, unexpired announcements, newest first.
// verticalID narrows vertical-targeted announcements to the given vertical
// while keeping audience-wide ones.
func (r *AnnouncementRepository) ListActive(ctx context.Context, now time.Time, verticalID *uuid.UUID) ([]domain.Announcement, error) {
	var announcements []domain.Announcement
	q := r.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at <= ?", now).
		Where("expires_at IS NULL OR expires_at > ?", now)
	if verticalID != nil {
		q = q.Where("vertical_id IS NULL OR vertical_id = ?", *verticalID)
	}
	err := q.Order("priority DESC, published_at DESC").Find(&announcements).Error
	return announcements, translateError(err)
}

func (r *AnnouncementRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Announcement, int64, error) {
	var announcements []domain.Announcement
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Announcement{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&announcements).Error
	return announcements, total, translateError(err)
}

func (r *AnnouncementRepository) Update(ctx context.Context, announcement *domain.Announcement) error {
	return translateError(r.db.WithContext(ctx).Save(announcement).Error)
}

// Delete soft-deletes an announcement and removes its view receipts
func (r *AnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Announcement{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("announcement_id = ?", id).Delete(&domain.AnnouncementView{}).Error
	}))
}

// MarkViewed records that a user has seen an announcement. Repeat views are
// no-ops.
func (r *AnnouncementRepository) MarkViewed(ctx context.Context, announcementID uuid.UUID, userID string) error {
	view := domain.AnnouncementView{
		AnnouncementID: announcementID,
		UserID:         userID,
		ViewedAt:       time.Now().UTC(),
	}
	err := translateError(r.db.WithContext(ctx).Create(&view).Error)
	if err == domain.ErrConflict {
		return nil
	}
	return err
}

// ViewCount returns how many distinct users have seen an announcement
func (r *AnnouncementRepository) ViewCount(ctx context.Context, announcementID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.AnnouncementView{}).
		Where("announcement_id = ?", announcementID).
		Count(&count).Error
	return count, translateError(err)
}
