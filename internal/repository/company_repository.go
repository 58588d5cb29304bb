package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return translateError(r.db.WithContext(ctx).Create(company).Error)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Company, int64, error) {
	var companies []domain.Company
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Company{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR org_number LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("name").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&companies).Error
	return companies, total, translateError(err)
}

func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	return translateError(r.db.WithContext(ctx).Save(company).Error)
}

// Delete soft-deletes a company. Contact links are removed, surviving
// references (leads, vault items) are nulled.
func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Company{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("company_id = ?", id).Delete(&domain.CompanyContact{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Lead{}).Where("company_id = ?", id).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.VaultDocument{}).Where("company_id = ?", id).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.VaultPassword{}).Where("company_id = ?", id).
			Update("company_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&domain.VaultCard{}).Where("company_id = ?", id).
			Update("company_id", nil).Error
	}))
}

// LinkContact attaches a contact to a company. The pair is unique.
func (r *CompanyRepository) LinkContact(ctx context.Context, link *domain.CompanyContact) error {
	return translateError(r.db.WithContext(ctx).Create(link).Error)
}

func (r *CompanyRepository) UnlinkContact(ctx context.Context, companyID, contactID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("company_id = ? AND contact_id = ?", companyID, contactID).
		Delete(&domain.CompanyContact{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
