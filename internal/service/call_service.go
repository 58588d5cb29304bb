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

// CallService logs phone interactions and their notes
type CallService struct {
	callRepo *repository.CallRepository
	activity *ActivityService
	logger   *zap.Logger
}

func NewCallService(callRepo *repository.CallRepository, activity *ActivityService, logger *zap.Logger) *CallService {
	return &CallService{callRepo: callRepo, activity: activity, logger: logger}
}

func (s *CallService) Create(ctx context.Context, req *domain.CreateCallRequest) (*domain.Call, error) {
	if !req.CallType.IsValid() {
		return nil, fmt.Errorf("%w: call type %q", domain.ErrInvalidEnum, req.CallType)
	}
	status := req.Status
	if status == "" {
		status = domain.CallStatusCompleted
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: call status %q", domain.ErrInvalidEnum, status)
	}

	startedAt := req.StartedAt
	if startedAt == nil {
		now := time.Now().UTC()
		startedAt = &now
	}

	call := &domain.Call{
		Subject:         req.Subject,
		CallType:        req.CallType,
		Status:          status,
		LeadID:          req.LeadID,
		ContactID:       req.ContactID,
		CallerID:        req.CallerID,
		StartedAt:       startedAt,
		DurationSeconds: req.DurationSeconds,
	}
	call.CreatedBy = actorSubject(ctx)

	if err := s.callRepo.Create(ctx, call); err != nil {
		return nil, fmt.Errorf("failed to create call: %w", err)
	}

	s.activity.Record(ctx, "created", "call", &call.ID, call.Subject)
	return call, nil
}

func (s *CallService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Call, error) {
	return s.callRepo.GetByID(ctx, id)
}

func (s *CallService) List(ctx context.Context, params domain.ListParams, filter repository.CallFilter) (*domain.PagedResponse[domain.Call], error) {
	params.Normalize()
	calls, total, err := s.callRepo.List(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	return domain.NewPagedResponse(calls, params, total), nil
}

func (s *CallService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CallStatus) (*domain.Call, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: call status %q", domain.ErrInvalidEnum, status)
	}
	call, err := s.callRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	call.Status = status
	if err := s.callRepo.Update(ctx, call); err != nil {
		return nil, fmt.Errorf("failed to update call: %w", err)
	}
	return call, nil
}

func (s *CallService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.callRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "call", &id, "")
	return nil
}

// AddNote attaches a typed note to a call
func (s *CallService) AddNote(ctx context.Context, callID uuid.UUID, req *domain.CreateCallNoteRequest) (*domain.CallNote, error) {
	if _, err := s.callRepo.GetByID(ctx, callID); err != nil {
		return nil, err
	}
	noteType := req.NoteType
	if noteType == "" {
		noteType = domain.CallNoteGeneral
	}
	if !noteType.IsValid() {
		return nil, fmt.Errorf("%w: call note type %q", domain.ErrInvalidEnum, noteType)
	}

	note := &domain.CallNote{
		CallID:   callID,
		NoteType: noteType,
		Body:     req.Body,
	}
	if err := s.callRepo.AddNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to add call note: %w", err)
	}
	return note, nil
}

func (s *CallService) RemoveNote(ctx context.Context, callID, noteID uuid.UUID) error {
	return s.callRepo.RemoveNote(ctx, callID, noteID)
}
