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

// EventService manages calendar events and invitations
type EventService struct {
	eventRepo     *repository.EventRepository
	notifications *NotificationService
	activity      *ActivityService
	logger        *zap.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	notifications *NotificationService,
	activity *ActivityService,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

func (s *EventService) Create(ctx context.Context, req *domain.CreateEventRequest) (*domain.Event, error) {
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("%w: event ends before it starts", domain.ErrInvalidInput)
	}

	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		OrganizerID: req.OrganizerID,
		LeadID:      req.LeadID,
	}
	event.CreatedBy = actorSubject(ctx)

	if err := s.eventRepo.Create(ctx, event, req.ParticipantIDs); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	for _, profileID := range req.ParticipantIDs {
		s.notifications.NotifyProfile(ctx, profileID, "event_invite", "Event invitation",
			fmt.Sprintf("You were invited to %q", event.Title), "event", &event.ID)
	}

	s.activity.Record(ctx, "created", "event", &event.ID, event.Title)
	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// ListBetween returns events overlapping the window
func (s *EventService) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	return s.eventRepo.ListBetween(ctx, from, to)
}

// ListForProfile returns events a profile organizes or attends in the window
func (s *EventService) ListForProfile(ctx context.Context, profileID uuid.UUID, from, to time.Time) ([]domain.Event, error) {
	return s.eventRepo.ListForProfile(ctx, profileID, from, to)
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateEventRequest) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("%w: event ends before it starts", domain.ErrInvalidInput)
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.LeadID = req.LeadID

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.activity.Record(ctx, "updated", "event", &event.ID, event.Title)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "event", &id, "")
	return nil
}

// Invite adds a participant with a pending response
func (s *EventService) Invite(ctx context.Context, eventID, profileID uuid.UUID) (*domain.EventParticipant, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	participant := &domain.EventParticipant{
		EventID:        eventID,
		ProfileID:      profileID,
		ResponseStatus: domain.ResponsePending,
	}
	if err := s.eventRepo.AddParticipant(ctx, participant); err != nil {
		return nil, err
	}

	s.notifications.NotifyProfile(ctx, profileID, "event_invite", "Event invitation",
		fmt.Sprintf("You were invited to %q", event.Title), "event", &eventID)
	return participant, nil
}

func (s *EventService) Uninvite(ctx context.Context, eventID, profileID uuid.UUID) error {
	return s.eventRepo.RemoveParticipant(ctx, eventID, profileID)
}

// Respond records a participant's reply to the invitation
func (s *EventService) Respond(ctx context.Context, eventID, profileID uuid.UUID, req *domain.RespondEventRequest) error {
	if !req.ResponseStatus.IsValid() {
		return fmt.Errorf("%w: response status %q", domain.ErrInvalidEnum, req.ResponseStatus)
	}
	return s.eventRepo.Respond(ctx, eventID, profileID, req.ResponseStatus)
}
