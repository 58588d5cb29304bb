package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	return translateError(r.db.WithContext(ctx).Create(document).Error)
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var document domain.Document
	err := r.db.WithContext(ctx).First(&document, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &document, nil
}

// ListForProfile returns documents shared with a profile
func (r *DocumentRepository) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Document, error) {
	var documents []domain.Document
	err := r.db.WithContext(ctx).
		Joins("JOIN document_assignments da ON da.document_id = documents.id").
		Where("da.profile_id = ?", profileID).
		Order("documents.title").
		Find(&documents).Error
	return documents, translateError(err)
}

// Delete soft-deletes a document and removes its shares
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Document{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("document_id = ?", id).Delete(&domain.DocumentAssignment{}).Error
	}))
}

func (r *DocumentRepository) Share(ctx context.Context, assignment *domain.DocumentAssignment) error {
	return translateError(r.db.WithContext(ctx).Create(assignment).Error)
}

func (r *DocumentRepository) Unshare(ctx context.Context, documentID, profileID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("document_id = ? AND profile_id = ?", documentID, profileID).
		Delete(&domain.DocumentAssignment{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
