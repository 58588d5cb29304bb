package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// DocumentService manages shared document references
type DocumentService struct {
	documentRepo *repository.DocumentRepository
	activity     *ActivityService
	logger       *zap.Logger
}

func NewDocumentService(documentRepo *repository.DocumentRepository, activity *ActivityService, logger *zap.Logger) *DocumentService {
	return &DocumentService{documentRepo: documentRepo, activity: activity, logger: logger}
}

func (s *DocumentService) Create(ctx context.Context, title, storagePath, mimeType string, size int64) (*domain.Document, error) {
	document := &domain.Document{
		Title:       title,
		StoragePath: storagePath,
		MimeType:    mimeType,
		Size:        size,
	}
	document.CreatedBy = actorSubject(ctx)

	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.activity.Record(ctx, "created", "document", &document.ID, document.Title)
	return document, nil
}

func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.documentRepo.GetByID(ctx, id)
}

// ListForProfile returns documents shared with a profile
func (s *DocumentService) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Document, error) {
	return s.documentRepo.ListForProfile(ctx, profileID)
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "document", &id, "")
	return nil
}

// Share grants a profile access; the pair is unique
func (s *DocumentService) Share(ctx context.Context, documentID, profileID uuid.UUID, canEdit bool) (*domain.DocumentAssignment, error) {
	if _, err := s.documentRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}

	assignment := &domain.DocumentAssignment{
		DocumentID: documentID,
		ProfileID:  profileID,
		CanEdit:    canEdit,
	}
	if err := s.documentRepo.Share(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *DocumentService) Unshare(ctx context.Context, documentID, profileID uuid.UUID) error {
	return s.documentRepo.Unshare(ctx, documentID, profileID)
}
