package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository handles the polymorphic comment table shared by tasks and
// tickets
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return translateError(r.db.WithContext(ctx).Create(comment).Error)
}

func (r *CommentRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at").
		Find(&comments).Error
	return comments, translateError(err)
}

// Delete removes a comment; only the author may remove their comment
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID, authorID string) error {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return translateError(err)
	}
	if comment.AuthorID != authorID {
		return domain.ErrForbidden
	}
	return translateError(r.db.WithContext(ctx).Delete(&comment).Error)
}
