package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/auth"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// ActivityService records and reads the audit trail. Recording never fails a
// business operation; write errors are logged and swallowed.
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewActivityService(activityRepo *repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{activityRepo: activityRepo, logger: logger}
}

// Record appends an audit event attributed to the acting identity
func (s *ActivityService) Record(ctx context.Context, verb, entityType string, entityID *uuid.UUID, summary string) {
	actorID := "system"
	if actor, ok := auth.FromContext(ctx); ok {
		actorID = actor.Subject
	}

	event := &domain.ActivityEvent{
		ActorID:    actorID,
		Verb:       verb,
		EntityType: entityType,
		EntityID:   entityID,
		Summary:    summary,
	}
	if err := s.activityRepo.Record(ctx, event); err != nil {
		s.logger.Warn("failed to record activity event",
			zap.String("verb", verb),
			zap.String("entity_type", entityType),
			zap.Error(err),
		)
	}
}

// List returns audit events matching the filter, newest first
func (s *ActivityService) List(ctx context.Context, params domain.ListParams, filter repository.ActivityFilter) ([]domain.ActivityEvent, int64, error) {
	params.Normalize()
	return s.activityRepo.List(ctx, params, filter)
}
