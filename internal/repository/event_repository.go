package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event with its initial participants
func (r *EventRepository) Create(ctx context.Context, event *domain.Event, participantIDs []uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		for _, pid := range participantIDs {
			p := domain.EventParticipant{
				EventID:        event.ID,
				ProfileID:      pid,
				ResponseStatus: domain.ResponsePending,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Participants.Profile").
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &event, nil
}

// ListBetween returns events overlapping the window, soonest first
func (r *EventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Where("starts_at < ? AND (ends_at IS NULL OR ends_at > ?)", to, from).
		Or("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at").
		Find(&events).Error
	return events, translateError(err)
}

// ListForProfile returns events a profile organizes or attends within the
// window
func (r *EventRepository) ListForProfile(ctx context.Context, profileID uuid.UUID, from, to time.Time) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN event_participants ep ON ep.event_id = events.id").
		Where("(events.organizer_id = ? OR ep.profile_id = ?)", profileID, profileID).
		Where("events.starts_at >= ? AND events.starts_at < ?", from, to).
		Distinct().
		Order("events.starts_at").
		Find(&events).Error
	return events, translateError(err)
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	return translateError(r.db.WithContext(ctx).Save(event).Error)
}

// Delete soft-deletes an event and removes its participants
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Event{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("event_id = ?", id).Delete(&domain.EventParticipant{}).Error
	}))
}

func (r *EventRepository) AddParticipant(ctx context.Context, participant *domain.EventParticipant) error {
	return translateError(r.db.WithContext(ctx).Create(participant).Error)
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, profileID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND profile_id = ?", eventID, profileID).
		Delete(&domain.EventParticipant{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Respond records a participant's reply to an invitation
func (r *EventRepository) Respond(ctx context.Context, eventID, profileID uuid.UUID, status domain.ResponseStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.EventParticipant{}).
		Where("event_id = ? AND profile_id = ?", eventID, profileID).
		Update("response_status", status)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
