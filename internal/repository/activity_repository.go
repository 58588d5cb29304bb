package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

// ActivityRepository is the append-only audit trail. Events are written and
// listed, never updated or deleted.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Record(ctx context.Context, event *domain.ActivityEvent) error {
	return translateError(r.db.WithContext(ctx).Create(event).Error)
}

// ActivityFilter narrows activity listings
type ActivityFilter struct {
	ActorID    string
	EntityType string
	EntityID   *uuid.UUID
}

func (r *ActivityRepository) List(ctx context.Context, params domain.ListParams, filter ActivityFilter) ([]domain.ActivityEvent, int64, error) {
	var events []domain.ActivityEvent
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.ActivityEvent{})
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		q = q.Where("entity_id = ?", *filter.EntityID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&events).Error
	return events, total, translateError(err)
}
