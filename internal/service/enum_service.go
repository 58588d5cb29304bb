package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// EnumService maintains the open vocabularies behind task status and priority
type EnumService struct {
	enumRepo *repository.EnumRepository
	logger   *zap.Logger
}

func NewEnumService(enumRepo *repository.EnumRepository, logger *zap.Logger) *EnumService {
	return &EnumService{enumRepo: enumRepo, logger: logger}
}

// Create adds a vocabulary value. The (type, value) pair is unique.
func (s *EnumService) Create(ctx context.Context, req *domain.CreateEnumOptionRequest) (*domain.EnumOption, error) {
	option := &domain.EnumOption{
		EnumType:  req.EnumType,
		Value:     req.Value,
		Label:     req.Label,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if err := s.enumRepo.Create(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

func (s *EnumService) List(ctx context.Context, enumType string) ([]domain.EnumOption, error) {
	return s.enumRepo.List(ctx, enumType)
}

// Deactivate retires a value without invalidating rows that already use it
func (s *EnumService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.enumRepo.Deactivate(ctx, id)
}

// SeedDefaults installs the default task vocabularies. Existing values are
// left untouched.
func (s *EnumService) SeedDefaults(ctx context.Context) error {
	if err := s.enumRepo.Seed(ctx, EnumTaskStatus, []string{"todo", "in_progress", "review", "done"}); err != nil {
		return fmt.Errorf("failed to seed task statuses: %w", err)
	}
	if err := s.enumRepo.Seed(ctx, EnumTaskPriority, []string{"low", "medium", "high", "urgent"}); err != nil {
		return fmt.Errorf("failed to seed task priorities: %w", err)
	}
	return nil
}
