package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// AnnouncementService manages broadcast announcements and read tracking
type AnnouncementService struct {
	announcementRepo *repository.AnnouncementRepository
	activity         *ActivityService
	logger           *zap.Logger
}

func NewAnnouncementService(announcementRepo *repository.AnnouncementRepository, activity *ActivityService, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo, activity: activity, logger: logger}
}

func (s *AnnouncementService) Create(ctx context.Context, req *domain.CreateAnnouncementRequest) (*domain.Announcement, error) {
	annType := req.Type
	if annType == "" {
		annType = domain.AnnouncementGeneral
	}
	if !annType.IsValid() {
		return nil, fmt.Errorf("%w: announcement type %q", domain.ErrInvalidEnum, annType)
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.AnnouncementPriorityNormal
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: announcement priority %q", domain.ErrInvalidEnum, priority)
	}
	audience := req.TargetAudience
	if audience == "" {
		audience = domain.AudienceAll
	}
	if !audience.IsValid() {
		return nil, fmt.Errorf("%w: target audience %q", domain.ErrInvalidEnum, audience)
	}
	if audience == domain.AudienceVertical && req.VerticalID == nil {
		return nil, fmt.Errorf("%w: vertical audience requires a vertical", domain.ErrInvalidInput)
	}

	announcement := &domain.Announcement{
		Title:          req.Title,
		Body:           req.Body,
		Type:           annType,
		Priority:       priority,
		TargetAudience: audience,
		VerticalID:     req.VerticalID,
		PublishedAt:    req.PublishedAt,
		ExpiresAt:      req.ExpiresAt,
	}
	announcement.CreatedBy = actorSubject(ctx)

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.activity.Record(ctx, "created", "announcement", &announcement.ID, announcement.Title)
	return announcement, nil
}

func (s *AnnouncementService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	return s.announcementRepo.GetByID(ctx, id)
}

// ListActive returns currently published, unexpired announcements visible to
// the given vertical. Global announcements are always included.
func (s *AnnouncementService) ListActive(ctx context.Context, verticalID *uuid.UUID) ([]domain.Announcement, error) {
	return s.announcementRepo.ListActive(ctx, time.Now().UTC(), verticalID)
}

func (s *AnnouncementService) List(ctx context.Context, params domain.ListParams) (*domain.PagedResponse[domain.Announcement], error) {
	params.Normalize()
	announcements, total, err := s.announcementRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return domain.NewPagedResponse(announcements, params, total), nil
}

func (s *AnnouncementService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateAnnouncementRequest) (*domain.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != "" {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("%w: announcement type %q", domain.ErrInvalidEnum, req.Type)
		}
		announcement.Type = req.Type
	}
	if req.Priority != "" {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("%w: announcement priority %q", domain.ErrInvalidEnum, req.Priority)
		}
		announcement.Priority = req.Priority
	}
	if req.TargetAudience != "" {
		if !req.TargetAudience.IsValid() {
			return nil, fmt.Errorf("%w: target audience %q", domain.ErrInvalidEnum, req.TargetAudience)
		}
		announcement.TargetAudience = req.TargetAudience
	}
	announcement.Title = req.Title
	announcement.Body = req.Body
	announcement.VerticalID = req.VerticalID
	announcement.PublishedAt = req.PublishedAt
	announcement.ExpiresAt = req.ExpiresAt

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	s.activity.Record(ctx, "updated", "announcement", &announcement.ID, announcement.Title)
	return announcement, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "announcement", &id, "")
	return nil
}

// MarkViewed records that the acting identity has seen the announcement.
// Repeat views are idempotent.
func (s *AnnouncementService) MarkViewed(ctx context.Context, id uuid.UUID) error {
	if _, err := s.announcementRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.announcementRepo.MarkViewed(ctx, id, actorSubject(ctx))
}

func (s *AnnouncementService) ViewCount(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := s.announcementRepo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return s.announcementRepo.ViewCount(ctx, id)
}
