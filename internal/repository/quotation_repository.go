package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	return translateError(r.db.WithContext(ctx).Create(quotation).Error)
}

func (r *QuotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := r.db.WithContext(ctx).Preload("Lead").First(&quotation, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &quotation, nil
}

func (r *QuotationRepository) GetByNumber(ctx context.Context, number string) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := r.db.WithContext(ctx).First(&quotation, "quote_number = ?", number).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &quotation, nil
}

func (r *QuotationRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Quotation, error) {
	var quotations []domain.Quotation
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&quotations).Error
	return quotations, translateError(err)
}

func (r *QuotationRepository) Update(ctx context.Context, quotation *domain.Quotation) error {
	return translateError(r.db.WithContext(ctx).Save(quotation).Error)
}

func (r *QuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Quotation{}, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
