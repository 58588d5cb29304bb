package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

// leadSortFields maps API sort fields to lead columns
var leadSortFields = map[string]string{
	"title":       "title",
	"status":      "status",
	"value":       "value",
	"probability": "probability",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	return translateError(r.db.WithContext(ctx).Create(lead).Error)
}

func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Company").
		Preload("Owner").
		Preload("Vertical").
		First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &lead, nil
}

// LeadFilter narrows lead listings
type LeadFilter struct {
	Status     *domain.LeadStatus
	OwnerID    *uuid.UUID
	VerticalID *uuid.UUID
	CompanyID  *uuid.UUID
}

func (r *LeadRepository) List(ctx context.Context, params domain.ListParams, filter LeadFilter, sort SortConfig) ([]domain.Lead, int64, error) {
	var leads []domain.Lead
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Lead{})
	if params.IncludeDeleted {
		q = q.Unscoped()
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.VerticalID != nil {
		q = q.Where("vertical_id = ?", *filter.VerticalID)
	}
	if filter.CompanyID != nil {
		q = q.Where("company_id = ?", *filter.CompanyID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?)", pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order(BuildOrderClause(sort, leadSortFields, "updated_at DESC")).
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&leads).Error
	return leads, total, translateError(err)
}

func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	return translateError(r.db.WithContext(ctx).Save(lead).Error)
}

// UpdateStatus transitions the lead and appends a status history row in one
// transaction
func (r *LeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus, changedBy, note string) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lead domain.Lead
		if err := tx.First(&lead, "id = ?", id).Error; err != nil {
			return err
		}
		from := string(lead.Status)
		if err := tx.Model(&lead).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Create(&domain.StatusHistory{
			EntityType: "lead",
			EntityID:   id,
			FromStatus: &from,
			ToStatus:   string(status),
			ChangedBy:  changedBy,
			Note:       note,
		}).Error
	}))
}

// Delete soft-deletes a lead. Its opportunity and quotations are soft-deleted
// with it, status history is removed, and calls, events and threads keep
// existing with the lead reference nulled.
func (r *LeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Lead{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("lead_id = ?", id).Delete(&domain.Opportunity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lead_id = ?", id).Delete(&domain.Quotation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entity_type = ? AND entity_id = ?", "lead", id).
			Delete(&domain.StatusHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Call{}).Where("lead_id = ?", id).
			Update("lead_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Event{}).Where("lead_id = ?", id).
			Update("lead_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&domain.MessageThread{}).Where("lead_id = ?", id).
			Update("lead_id", nil).Error
	}))
}

// Restore clears the soft-deletion marker on a lead and its cascade-deleted
// dependents
func (r *LeadRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Model(&domain.Lead{}).
			Where("id = ? AND deleted_at IS NOT NULL", id).
			Update("deleted_at", nil)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Unscoped().Model(&domain.Opportunity{}).
			Where("lead_id = ?", id).Update("deleted_at", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Model(&domain.Quotation{}).
			Where("lead_id = ?", id).Update("deleted_at", nil).Error
	}))
}

// StatusHistory returns the transitions of a lead, oldest first
func (r *LeadRepository) StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistory, error) {
	var history []domain.StatusHistory
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", "lead", id).
		Order("created_at").
		Find(&history).Error
	return history, translateError(err)
}
