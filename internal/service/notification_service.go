package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// NotificationService delivers in-app notifications. Delivery respects the
// recipient's per-type preferences and never fails the calling operation.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	profileRepo      *repository.ProfileRepository
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	profileRepo *repository.ProfileRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		logger:           logger,
	}
}

// Notify delivers a notification to an external user identity. A disabled
// preference suppresses delivery silently.
func (s *NotificationService) Notify(ctx context.Context, userID, notificationType, title, message, entityType string, entityID *uuid.UUID) {
	notification := &domain.Notification{
		UserID:     userID,
		Type:       notificationType,
		Title:      title,
		Message:    message,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to deliver notification",
			zap.String("user_id", userID),
			zap.String("type", notificationType),
			zap.Error(err),
		)
	}
}

// NotifyProfile resolves a profile to its user identity and delivers to it
func (s *NotificationService) NotifyProfile(ctx context.Context, profileID uuid.UUID, notificationType, title, message, entityType string, entityID *uuid.UUID) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		s.logger.Warn("failed to resolve notification recipient",
			zap.String("profile_id", profileID.String()),
			zap.Error(err),
		)
		return
	}
	s.Notify(ctx, profile.UserID, notificationType, title, message, entityType, entityID)
}

// List returns the acting identity's notifications, newest first
func (s *NotificationService) List(ctx context.Context, params domain.ListParams, unreadOnly bool) (*domain.PagedResponse[domain.Notification], error) {
	actor := actorSubject(ctx)
	params.Normalize()
	notifications, total, err := s.notificationRepo.ListForUser(ctx, actor, unreadOnly, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return domain.NewPagedResponse(notifications, params, total), nil
}

// MarkRead marks one of the acting identity's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id, actorSubject(ctx))
}

// MarkAllRead marks all of the acting identity's notifications as read and
// returns the number affected
func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, actorSubject(ctx))
}

// SetPreference opts the acting identity in or out of a notification type
func (s *NotificationService) SetPreference(ctx context.Context, notificationType string, enabled bool) error {
	return s.notificationRepo.SetPreference(ctx, actorSubject(ctx), notificationType, enabled)
}

func (s *NotificationService) Preferences(ctx context.Context) ([]domain.NotificationPreference, error) {
	return s.notificationRepo.ListPreferences(ctx, actorSubject(ctx))
}
