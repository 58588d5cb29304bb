package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// VerticalService manages business-line partitions
type VerticalService struct {
	verticalRepo *repository.VerticalRepository
	activity     *ActivityService
	logger       *zap.Logger
}

func NewVerticalService(verticalRepo *repository.VerticalRepository, activity *ActivityService, logger *zap.Logger) *VerticalService {
	return &VerticalService{verticalRepo: verticalRepo, activity: activity, logger: logger}
}

func (s *VerticalService) Create(ctx context.Context, req *domain.CreateVerticalRequest) (*domain.Vertical, error) {
	vertical := &domain.Vertical{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	vertical.CreatedBy = actorSubject(ctx)

	if err := s.verticalRepo.Create(ctx, vertical); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "created", "vertical", &vertical.ID, vertical.Code)
	return vertical, nil
}

func (s *VerticalService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vertical, error) {
	return s.verticalRepo.GetByID(ctx, id)
}

func (s *VerticalService) GetByCode(ctx context.Context, code string) (*domain.Vertical, error) {
	return s.verticalRepo.GetByCode(ctx, code)
}

func (s *VerticalService) List(ctx context.Context) ([]domain.Vertical, error) {
	return s.verticalRepo.List(ctx)
}

func (s *VerticalService) Update(ctx context.Context, id uuid.UUID, name, description string, isActive *bool) (*domain.Vertical, error) {
	vertical, err := s.verticalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vertical.Name = name
	vertical.Description = description
	if isActive != nil {
		vertical.IsActive = *isActive
	}
	if err := s.verticalRepo.Update(ctx, vertical); err != nil {
		return nil, fmt.Errorf("failed to update vertical: %w", err)
	}
	return vertical, nil
}

func (s *VerticalService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.verticalRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "vertical", &id, "")
	return nil
}

// AssignUser places an external user identity into a vertical
func (s *VerticalService) AssignUser(ctx context.Context, verticalID uuid.UUID, userID string) error {
	if _, err := s.verticalRepo.GetByID(ctx, verticalID); err != nil {
		return err
	}
	return s.verticalRepo.AssignUser(ctx, userID, verticalID)
}

func (s *VerticalService) UnassignUser(ctx context.Context, verticalID uuid.UUID, userID string) error {
	return s.verticalRepo.UnassignUser(ctx, userID, verticalID)
}

func (s *VerticalService) VerticalsForUser(ctx context.Context, userID string) ([]domain.Vertical, error) {
	return s.verticalRepo.VerticalsForUser(ctx, userID)
}
