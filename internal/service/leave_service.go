package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// LeaveService handles leave requests and their approval lifecycle
type LeaveService struct {
	leaveRepo     *repository.LeaveRepository
	profileRepo   *repository.ProfileRepository
	notifications *NotificationService
	activity      *ActivityService
	logger        *zap.Logger
}

func NewLeaveService(
	leaveRepo *repository.LeaveRepository,
	profileRepo *repository.ProfileRepository,
	notifications *NotificationService,
	activity *ActivityService,
	logger *zap.Logger,
) *LeaveService {
	return &LeaveService{
		leaveRepo:     leaveRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

// Request files a pending leave request for a profile
func (s *LeaveService) Request(ctx context.Context, profileID uuid.UUID, req *domain.CreateLeaveRequest) (*domain.LeaveRequest, error) {
	if !req.LeaveType.IsValid() {
		return nil, fmt.Errorf("%w: leave type %q", domain.ErrInvalidEnum, req.LeaveType)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: leave ends before it starts", domain.ErrInvalidInput)
	}
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return nil, err
	}

	request := &domain.LeaveRequest{
		ProfileID: profileID,
		LeaveType: req.LeaveType,
		Status:    domain.LeavePending,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}
	if err := s.leaveRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.activity.Record(ctx, "created", "leave_request", &request.ID, string(request.LeaveType))
	return request, nil
}

func (s *LeaveService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeaveRequest, error) {
	return s.leaveRepo.GetByID(ctx, id)
}

func (s *LeaveService) List(ctx context.Context, params domain.ListParams, filter repository.LeaveFilter) (*domain.PagedResponse[domain.LeaveRequest], error) {
	params.Normalize()
	requests, total, err := s.leaveRepo.List(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return domain.NewPagedResponse(requests, params, total), nil
}

// Decide approves or rejects a pending request. Only pending requests can be
// decided; a second decision fails with a conflict.
func (s *LeaveService) Decide(ctx context.Context, id uuid.UUID, req *domain.DecideLeaveRequest) error {
	if req.Status != domain.LeaveApproved && req.Status != domain.LeaveRejected {
		return fmt.Errorf("%w: decision %q", domain.ErrInvalidEnum, req.Status)
	}

	if err := s.leaveRepo.Decide(ctx, id, req.Status, req.ApproverID); err != nil {
		return err
	}

	if request, err := s.leaveRepo.GetByID(ctx, id); err == nil {
		s.notifications.NotifyProfile(ctx, request.ProfileID, "leave_decided", "Leave request decided",
			fmt.Sprintf("Your leave request was %s", req.Status), "leave_request", &id)
	}

	s.activity.Record(ctx, string(req.Status), "leave_request", &id, "")
	return nil
}

// Cancel withdraws a pending request; only the requesting profile's own
// pending requests can be cancelled
func (s *LeaveService) Cancel(ctx context.Context, id, profileID uuid.UUID) error {
	if err := s.leaveRepo.Cancel(ctx, id, profileID); err != nil {
		return err
	}
	s.activity.Record(ctx, "cancelled", "leave_request", &id, "")
	return nil
}
