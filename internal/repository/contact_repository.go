package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	return translateError(r.db.WithContext(ctx).Create(contact).Error)
}

func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &contact, nil
}

func (r *ContactRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Contact, int64, error) {
	var contacts []domain.Contact
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Contact{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("last_name, first_name").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&contacts).Error
	return contacts, total, translateError(err)
}

// ListByCompany returns contacts linked to a company via company_contacts
func (r *ContactRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := r.db.WithContext(ctx).
		Joins("JOIN company_contacts cc ON cc.contact_id = contacts.id").
		Where("cc.company_id = ?", companyID).
		Order("contacts.last_name, contacts.first_name").
		Find(&contacts).Error
	return contacts, translateError(err)
}

func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	return translateError(r.db.WithContext(ctx).Save(contact).Error)
}

// Delete soft-deletes a contact. Company links go with it; leads, calls and
// tickets keep existing with their contact reference nulled.
func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Contact{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("contact_id = ?", id).Delete(&domain.CompanyContact{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Lead{}).Where("contact_id = ?", id).
			Update("contact_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Call{}).Where("contact_id = ?", id).
			Update("contact_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Ticket{}).Where("contact_id = ?", id).
			Update("contact_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Subscription{}).Where("vendor_contact_id = ?", id).
			Update("vendor_contact_id", nil).Error
	}))
}
