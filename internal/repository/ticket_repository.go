package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return translateError(r.db.WithContext(ctx).Create(ticket).Error)
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("ResolvedBy").
		Preload("Assignments.Assignee").
		First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &ticket, nil
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := r.db.WithContext(ctx).
		Preload("Assignments.Assignee").
		First(&ticket, "ticket_number = ?", number).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &ticket, nil
}

// TicketFilter narrows ticket listings
type TicketFilter struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	ContactID  *uuid.UUID
	AssigneeID *uuid.UUID
}

func (r *TicketRepository) List(ctx context.Context, params domain.ListParams, filter TicketFilter) ([]domain.Ticket, int64, error) {
	var tickets []domain.Ticket
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Ticket{})
	if filter.Status != nil {
		q = q.Where("tickets.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("tickets.priority = ?", *filter.Priority)
	}
	if filter.ContactID != nil {
		q = q.Where("tickets.contact_id = ?", *filter.ContactID)
	}
	if filter.AssigneeID != nil {
		q = q.Joins("JOIN ticket_assignments tas ON tas.ticket_id = tickets.id").
			Where("tas.assignee_id = ?", *filter.AssigneeID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("LOWER(tickets.subject) LIKE LOWER(?) OR tickets.ticket_number LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("tickets.created_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&tickets).Error
	return tickets, total, translateError(err)
}

func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	return translateError(r.db.WithContext(ctx).Save(ticket).Error)
}

// UpdateStatus transitions the ticket and appends a status history row. A
// transition into resolved also stamps the resolver.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TicketStatus, resolvedBy *uuid.UUID, changedBy, note string) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket domain.Ticket
		if err := tx.First(&ticket, "id = ?", id).Error; err != nil {
			return err
		}
		from := string(ticket.Status)

		updates := map[string]interface{}{"status": status}
		if status == domain.TicketStatusResolved {
			now := time.Now().UTC()
			updates["resolved_at"] = &now
			updates["resolved_by_id"] = resolvedBy
		}
		if err := tx.Model(&ticket).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Create(&domain.StatusHistory{
			EntityType: "ticket",
			EntityID:   id,
			FromStatus: &from,
			ToStatus:   string(status),
			ChangedBy:  changedBy,
			Note:       note,
		}).Error
	}))
}

// Delete soft-deletes a ticket and removes its assignments, comments and
// status history
func (r *TicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Ticket{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("ticket_id = ?", id).Delete(&domain.TicketAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entity_type = ? AND entity_id = ?", "ticket", id).
			Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("entity_type = ? AND entity_id = ?", "ticket", id).
			Delete(&domain.StatusHistory{}).Error
	}))
}

func (r *TicketRepository) AddAssignment(ctx context.Context, assignment *domain.TicketAssignment) error {
	return translateError(r.db.WithContext(ctx).Create(assignment).Error)
}

func (r *TicketRepository) RemoveAssignment(ctx context.Context, ticketID, assigneeID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("ticket_id = ? AND assignee_id = ?", ticketID, assigneeID).
		Delete(&domain.TicketAssignment{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// StatusHistory returns the transitions of a ticket, oldest first
func (r *TicketRepository) StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistory, error) {
	var history []domain.StatusHistory
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", "ticket", id).
		Order("created_at").
		Find(&history).Error
	return history, translateError(err)
}
