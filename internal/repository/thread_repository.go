package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type ThreadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

// Create inserts a thread with its initial participants
func (r *ThreadRepository) Create(ctx context.Context, thread *domain.MessageThread, participantIDs []uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		for _, pid := range participantIDs {
			p := domain.ThreadParticipant{ThreadID: thread.ID, ProfileID: pid}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

func (r *ThreadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageThread, error) {
	var thread domain.MessageThread
	err := r.db.WithContext(ctx).
		Preload("Participants.Profile").
		First(&thread, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &thread, nil
}

// ListForProfile returns threads the profile participates in
func (r *ThreadRepository) ListForProfile(ctx context.Context, profileID uuid.UUID, params domain.ListParams) ([]domain.MessageThread, int64, error) {
	var threads []domain.MessageThread
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.MessageThread{}).
		Joins("JOIN thread_participants tp ON tp.thread_id = message_threads.id").
		Where("tp.profile_id = ?", profileID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("message_threads.updated_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&threads).Error
	return threads, total, translateError(err)
}

// Delete soft-deletes a thread and removes its messages and participants
func (r *ThreadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.MessageThread{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("thread_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("thread_id = ?", id).Delete(&domain.ThreadParticipant{}).Error
	}))
}

func (r *ThreadRepository) AddParticipant(ctx context.Context, participant *domain.ThreadParticipant) error {
	return translateError(r.db.WithContext(ctx).Create(participant).Error)
}

func (r *ThreadRepository) RemoveParticipant(ctx context.Context, threadID, profileID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("thread_id = ? AND profile_id = ?", threadID, profileID).
		Delete(&domain.ThreadParticipant{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IsParticipant reports whether a profile belongs to a thread
func (r *ThreadRepository) IsParticipant(ctx context.Context, threadID, profileID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ThreadParticipant{}).
		Where("thread_id = ? AND profile_id = ?", threadID, profileID).
		Count(&count).Error
	return count > 0, translateError(err)
}

// PostMessage appends a message and bumps the thread's updated_at so listings
// sort by activity
func (r *ThreadRepository) PostMessage(ctx context.Context, message *domain.Message) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thread domain.MessageThread
		if err := tx.First(&thread, "id = ?", message.ThreadID).Error; err != nil {
			return err
		}
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&thread).UpdateColumn("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
	}))
}

func (r *ThreadRepository) ListMessages(ctx context.Context, threadID uuid.UUID, params domain.ListParams) ([]domain.Message, int64, error) {
	var messages []domain.Message
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Message{}).Where("thread_id = ?", threadID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Preload("Sender").
		Order("sent_at").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&messages).Error
	return messages, total, translateError(err)
}
