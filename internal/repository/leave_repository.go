package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, request *domain.LeaveRequest) error {
	return translateError(r.db.WithContext(ctx).Create(request).Error)
}

func (r *LeaveRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeaveRequest, error) {
	var request domain.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Approver").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &request, nil
}

// LeaveFilter narrows leave request listings
type LeaveFilter struct {
	ProfileID *uuid.UUID
	Status    *domain.LeaveStatus
}

func (r *LeaveRepository) List(ctx context.Context, params domain.ListParams, filter LeaveFilter) ([]domain.LeaveRequest, int64, error) {
	var requests []domain.LeaveRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.LeaveRequest{})
	if filter.ProfileID != nil {
		q = q.Where("profile_id = ?", *filter.ProfileID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("start_date DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&requests).Error
	return requests, total, translateError(err)
}

// Decide approves or rejects a pending request. Only pending requests can be
// decided.
func (r *LeaveRepository) Decide(ctx context.Context, id uuid.UUID, status domain.LeaveStatus, approverID uuid.UUID) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.LeaveRequest{}).
		Where("id = ? AND status = ?", id, domain.LeavePending).
		Updates(map[string]interface{}{
			"status":      status,
			"approver_id": approverID,
			"decided_at":  &now,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Cancel withdraws a request; only the requester's own pending request can be
// cancelled
func (r *LeaveRepository) Cancel(ctx context.Context, id, profileID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&domain.LeaveRequest{}).
		Where("id = ? AND profile_id = ? AND status = ?", id, profileID, domain.LeavePending).
		Update("status", domain.LeaveCancelled)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}
