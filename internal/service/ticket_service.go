package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// TicketService runs the support desk. Ticket numbers come from the shared
// number sequence and follow the TCK-NNNNNN format.
type TicketService struct {
	ticketRepo    *repository.TicketRepository
	commentRepo   *repository.CommentRepository
	sequenceRepo  *repository.NumberSequenceRepository
	notifications *NotificationService
	activity      *ActivityService
	logger        *zap.Logger
}

func NewTicketService(
	ticketRepo *repository.TicketRepository,
	commentRepo *repository.CommentRepository,
	sequenceRepo *repository.NumberSequenceRepository,
	notifications *NotificationService,
	activity *ActivityService,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		ticketRepo:    ticketRepo,
		commentRepo:   commentRepo,
		sequenceRepo:  sequenceRepo,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

func (s *TicketService) Create(ctx context.Context, req *domain.CreateTicketRequest) (*domain.Ticket, error) {
	priority := req.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: ticket priority %q", domain.ErrInvalidEnum, priority)
	}

	seq, err := s.sequenceRepo.Next(ctx, repository.SequenceTickets)
	if err != nil {
		return nil, fmt.Errorf("failed to issue ticket number: %w", err)
	}

	ticket := &domain.Ticket{
		TicketNumber: fmt.Sprintf("TCK-%06d", seq),
		Subject:      req.Subject,
		Description:  req.Description,
		Status:       domain.TicketStatusNew,
		Priority:     priority,
		ContactID:    req.ContactID,
	}
	ticket.CreatedBy = actorSubject(ctx)

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	for _, assigneeID := range req.AssigneeIDs {
		assignment := &domain.TicketAssignment{
			TicketID:   ticket.ID,
			AssigneeID: assigneeID,
		}
		if err := s.ticketRepo.AddAssignment(ctx, assignment); err != nil {
			return nil, fmt.Errorf("failed to assign ticket: %w", err)
		}
		s.notifications.NotifyProfile(ctx, assigneeID, "ticket_assigned", "Ticket assigned",
			fmt.Sprintf("You were assigned %s", ticket.TicketNumber), "ticket", &ticket.ID)
	}

	s.activity.Record(ctx, "created", "ticket", &ticket.ID, ticket.TicketNumber)
	return ticket, nil
}

func (s *TicketService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	return s.ticketRepo.GetByID(ctx, id)
}

func (s *TicketService) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	return s.ticketRepo.GetByNumber(ctx, number)
}

func (s *TicketService) List(ctx context.Context, params domain.ListParams, filter repository.TicketFilter) (*domain.PagedResponse[domain.Ticket], error) {
	params.Normalize()
	tickets, total, err := s.ticketRepo.List(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return domain.NewPagedResponse(tickets, params, total), nil
}

func (s *TicketService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateTicketRequest) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("%w: ticket priority %q", domain.ErrInvalidEnum, *req.Priority)
		}
		ticket.Priority = *req.Priority
	}
	if req.Subject != nil {
		ticket.Subject = *req.Subject
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.ContactID != nil {
		ticket.ContactID = req.ContactID
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	s.activity.Record(ctx, "updated", "ticket", &ticket.ID, ticket.TicketNumber)
	return ticket, nil
}

// ChangeStatus transitions a ticket and appends to its status history
func (s *TicketService) ChangeStatus(ctx context.Context, id uuid.UUID, req *domain.ChangeStatusRequest) error {
	status := domain.TicketStatus(req.Status)
	if !status.IsValid() {
		return fmt.Errorf("%w: ticket status %q", domain.ErrInvalidEnum, req.Status)
	}

	if err := s.ticketRepo.UpdateStatus(ctx, id, status, nil, actorSubject(ctx), req.Note); err != nil {
		return err
	}

	s.activity.Record(ctx, "status_changed", "ticket", &id, req.Status)
	return nil
}

// Resolve marks a ticket resolved, stamping the resolver and resolution time
func (s *TicketService) Resolve(ctx context.Context, id uuid.UUID, req *domain.ResolveTicketRequest) error {
	resolvedBy := req.ResolvedByID
	if err := s.ticketRepo.UpdateStatus(ctx, id, domain.TicketStatusResolved, &resolvedBy, actorSubject(ctx), req.Note); err != nil {
		return err
	}

	s.activity.Record(ctx, "resolved", "ticket", &id, "")
	return nil
}

func (s *TicketService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "ticket", &id, "")
	return nil
}

// Assign adds an assignee to a ticket; the pair is unique
func (s *TicketService) Assign(ctx context.Context, ticketID, assigneeID uuid.UUID) (*domain.TicketAssignment, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	assignment := &domain.TicketAssignment{
		TicketID:   ticketID,
		AssigneeID: assigneeID,
	}
	if err := s.ticketRepo.AddAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	s.notifications.NotifyProfile(ctx, assigneeID, "ticket_assigned", "Ticket assigned",
		fmt.Sprintf("You were assigned %s", ticket.TicketNumber), "ticket", &ticketID)
	return assignment, nil
}

func (s *TicketService) Unassign(ctx context.Context, ticketID, assigneeID uuid.UUID) error {
	return s.ticketRepo.RemoveAssignment(ctx, ticketID, assigneeID)
}

// Comment adds a discussion entry attributed to the acting identity
func (s *TicketService) Comment(ctx context.Context, ticketID uuid.UUID, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{
		EntityType: "ticket",
		EntityID:   ticketID,
		AuthorID:   actorSubject(ctx),
		Body:       req.Body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment, nil
}

func (s *TicketService) Comments(ctx context.Context, ticketID uuid.UUID) ([]domain.Comment, error) {
	return s.commentRepo.ListByEntity(ctx, "ticket", ticketID)
}

func (s *TicketService) StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistory, error) {
	if _, err := s.ticketRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.ticketRepo.StatusHistory(ctx, id)
}
