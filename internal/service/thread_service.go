package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// ThreadService manages message threads. Only participants may read a thread
// or post to it.
type ThreadService struct {
	threadRepo *repository.ThreadRepository
	activity   *ActivityService
	logger     *zap.Logger
}

func NewThreadService(threadRepo *repository.ThreadRepository, activity *ActivityService, logger *zap.Logger) *ThreadService {
	return &ThreadService{threadRepo: threadRepo, activity: activity, logger: logger}
}

func (s *ThreadService) Create(ctx context.Context, req *domain.CreateThreadRequest) (*domain.MessageThread, error) {
	thread := &domain.MessageThread{
		Subject: req.Subject,
		LeadID:  req.LeadID,
	}
	thread.CreatedBy = actorSubject(ctx)

	if err := s.threadRepo.Create(ctx, thread, req.ParticipantIDs); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	s.activity.Record(ctx, "created", "thread", &thread.ID, thread.Subject)
	return thread, nil
}

func (s *ThreadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageThread, error) {
	return s.threadRepo.GetByID(ctx, id)
}

// ListForProfile returns the threads a profile participates in, most recently
// active first
func (s *ThreadService) ListForProfile(ctx context.Context, profileID uuid.UUID, params domain.ListParams) (*domain.PagedResponse[domain.MessageThread], error) {
	params.Normalize()
	threads, total, err := s.threadRepo.ListForProfile(ctx, profileID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return domain.NewPagedResponse(threads, params, total), nil
}

func (s *ThreadService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.threadRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "thread", &id, "")
	return nil
}

func (s *ThreadService) AddParticipant(ctx context.Context, threadID, profileID uuid.UUID) error {
	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return err
	}
	participant := &domain.ThreadParticipant{
		ThreadID:  threadID,
		ProfileID: profileID,
	}
	return s.threadRepo.AddParticipant(ctx, participant)
}

func (s *ThreadService) RemoveParticipant(ctx context.Context, threadID, profileID uuid.UUID) error {
	return s.threadRepo.RemoveParticipant(ctx, threadID, profileID)
}

// PostMessage appends a message. The sender must be a participant of the
// thread.
func (s *ThreadService) PostMessage(ctx context.Context, threadID uuid.UUID, req *domain.PostMessageRequest) (*domain.Message, error) {
	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return nil, err
	}

	isParticipant, err := s.threadRepo.IsParticipant(ctx, threadID, req.SenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check thread membership: %w", err)
	}
	if !isParticipant {
		return nil, ErrPermissionDenied
	}

	message := &domain.Message{
		ThreadID: threadID,
		SenderID: req.SenderID,
		Body:     req.Body,
	}
	if err := s.threadRepo.PostMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}
	return message, nil
}

func (s *ThreadService) Messages(ctx context.Context, threadID uuid.UUID, params domain.ListParams) (*domain.PagedResponse[domain.Message], error) {
	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return nil, err
	}
	params.Normalize()
	messages, total, err := s.threadRepo.ListMessages(ctx, threadID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return domain.NewPagedResponse(messages, params, total), nil
}
