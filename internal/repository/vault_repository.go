package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

// VaultRepository handles creator-private vault items. Every read and write
// is scoped to the acting identity; items of other users behave as if they do
// not exist.
type VaultRepository struct {
	db *gorm.DB
}

func NewVaultRepository(db *gorm.DB) *VaultRepository {
	return &VaultRepository{db: db}
}

func (r *VaultRepository) CreateDocument(ctx context.Context, doc *domain.VaultDocument) error {
	return translateError(r.db.WithContext(ctx).Create(doc).Error)
}

func (r *VaultRepository) GetDocument(ctx context.Context, actor string, id uuid.UUID) (*domain.VaultDocument, error) {
	var doc domain.VaultDocument
	err := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, actor).
		First(&doc).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &doc, nil
}

func (r *VaultRepository) ListDocuments(ctx context.Context, actor string) ([]domain.VaultDocument, error) {
	var docs []domain.VaultDocument
	err := r.db.WithContext(ctx).
		Where("created_by = ?", actor).
		Order("title").
		Find(&docs).Error
	return docs, translateError(err)
}

func (r *VaultRepository) DeleteDocument(ctx context.Context, actor string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, actor).
		Delete(&domain.VaultDocument{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VaultRepository) CreatePassword(ctx context.Context, pw *domain.VaultPassword) error {
	return translateError(r.db.WithContext(ctx).Create(pw).Error)
}

func (r *VaultRepository) GetPassword(ctx context.Context, actor string, id uuid.UUID) (*domain.VaultPassword, error) {
	var pw domain.VaultPassword
	err := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, actor).
		First(&pw).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &pw, nil
}

func (r *VaultRepository) ListPasswords(ctx context.Context, actor string) ([]domain.VaultPassword, error) {
	var pws []domain.VaultPassword
	err := r.db.WithContext(ctx).
		Where("created_by = ?", actor).
		Order("title").
		Find(&pws).Error
	return pws, translateError(err)
}

func (r *VaultRepository) UpdatePassword(ctx context.Context, actor string, pw *domain.VaultPassword) error {
	if pw.CreatedBy != actor {
		return domain.ErrNotFound
	}
	return translateError(r.db.WithContext(ctx).Save(pw).Error)
}

func (r *VaultRepository) DeletePassword(ctx context.Context, actor string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, actor).
		Delete(&domain.VaultPassword{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VaultRepository) CreateCard(ctx context.Context, card *domain.VaultCard) error {
	return translateError(r.db.WithContext(ctx).Create(card).Error)
}

func (r *VaultRepository) GetCard(ctx context.Context, actor string, id uuid.UUID) (*domain.VaultCard, error) {
	var card domain.VaultCard
	err := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, actor).
		First(&card).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &card, nil
}

func (r *VaultRepository) ListCards(ctx context.Context, actor string) ([]domain.VaultCard, error) {
	var cards []domain.VaultCard
	err := r.db.WithContext(ctx).
		Where("created_by = ?", actor).
		Order("title").
		Find(&cards).Error
	return cards, translateError(err)
}

func (r *VaultRepository) DeleteCard(ctx context.Context, actor string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", id, actor).
		Delete(&domain.VaultCard{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
