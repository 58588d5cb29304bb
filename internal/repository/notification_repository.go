package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create delivers a notification unless the user opted out of its type
func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	var pref domain.NotificationPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND notification_type = ?", notification.UserID, notification.Type).
		First(&pref).Error
	if err == nil && !pref.Enabled {
		return nil
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return translateError(err)
	}
	return translateError(r.db.WithContext(ctx).Create(notification).Error)
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, params domain.ListParams) ([]domain.Notification, int64, error) {
	var notifications []domain.Notification
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&notifications).Error
	return notifications, total, translateError(err)
}

// MarkRead marks one notification read for its owner
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, userID string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"read": true, "read_at": &now})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of a user read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now})
	return res.RowsAffected, translateError(res.Error)
}

// SetPreference creates or updates an opt-in/opt-out row
func (r *NotificationRepository) SetPreference(ctx context.Context, userID, notificationType string, enabled bool) error {
	var pref domain.NotificationPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND notification_type = ?", userID, notificationType).
		First(&pref).Error
	if err == gorm.ErrRecordNotFound {
		pref = domain.NotificationPreference{
			UserID:           userID,
			NotificationType: notificationType,
			Enabled:          enabled,
		}
		return translateError(r.db.WithContext(ctx).Create(&pref).Error)
	}
	if err != nil {
		return translateError(err)
	}
	return translateError(r.db.WithContext(ctx).Model(&pref).Update("enabled", enabled).Error)
}

func (r *NotificationRepository) ListPreferences(ctx context.Context, userID string) ([]domain.NotificationPreference, error) {
	var prefs []domain.NotificationPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("notification_type").
		Find(&prefs).Error
	return prefs, translateError(err)
}
