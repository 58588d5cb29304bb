package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type CallRepository struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) Create(ctx context.Context, call *domain.Call) error {
	return translateError(r.db.WithContext(ctx).Create(call).Error)
}

func (r *CallRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Call, error) {
	var call domain.Call
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Caller").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("call_notes.created_at")
		}).
		First(&call, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &call, nil
}

// CallFilter narrows call listings
type CallFilter struct {
	LeadID    *uuid.UUID
	ContactID *uuid.UUID
	CallerID  *uuid.UUID
	CallType  *domain.CallType
}

func (r *CallRepository) List(ctx context.Context, params domain.ListParams, filter CallFilter) ([]domain.Call, int64, error) {
	var calls []domain.Call
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Call{})
	if filter.LeadID != nil {
		q = q.Where("lead_id = ?", *filter.LeadID)
	}
	if filter.ContactID != nil {
		q = q.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.CallerID != nil {
		q = q.Where("caller_id = ?", *filter.CallerID)
	}
	if filter.CallType != nil {
		q = q.Where("call_type = ?", *filter.CallType)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("started_at DESC, created_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&calls).Error
	return calls, total, translateError(err)
}

func (r *CallRepository) Update(ctx context.Context, call *domain.Call) error {
	return translateError(r.db.WithContext(ctx).Save(call).Error)
}

// Delete soft-deletes a call and removes its notes
func (r *CallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Call{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("call_id = ?", id).Delete(&domain.CallNote{}).Error
	}))
}

func (r *CallRepository) AddNote(ctx context.Context, note *domain.CallNote) error {
	return translateError(r.db.WithContext(ctx).Create(note).Error)
}

func (r *CallRepository) RemoveNote(ctx context.Context, callID, noteID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND call_id = ?", noteID, callID).
		Delete(&domain.CallNote{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
