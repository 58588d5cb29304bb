package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscription *domain.Subscription) error {
	return translateError(r.db.WithContext(ctx).Create(subscription).Error)
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	var subscription domain.Subscription
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Team").
		Preload("VendorContact").
		Preload("Users.Profile").
		Preload("Renewals", func(db *gorm.DB) *gorm.DB {
			return db.Order("subscription_renewals.renewed_at DESC")
		}).
		First(&subscription, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &subscription, nil
}

// SubscriptionFilter narrows subscription listings
type SubscriptionFilter struct {
	Status  *domain.SubscriptionStatus
	OwnerID *uuid.UUID
	TeamID  *uuid.UUID
}

func (r *SubscriptionRepository) List(ctx context.Context, params domain.ListParams, filter SubscriptionFilter) ([]domain.Subscription, int64, error) {
	var subscriptions []domain.Subscription
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Subscription{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.TeamID != nil {
		q = q.Where("team_id = ?", *filter.TeamID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(vendor) LIKE LOWER(?)", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("name").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&subscriptions).Error
	return subscriptions, total, translateError(err)
}

func (r *SubscriptionRepository) Update(ctx context.Context, subscription *domain.Subscription) error {
	return translateError(r.db.WithContext(ctx).Save(subscription).Error)
}

// Delete soft-deletes a subscription and removes its renewals and seats
func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Subscription{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("subscription_id = ?", id).Delete(&domain.SubscriptionRenewal{}).Error; err != nil {
			return err
		}
		return tx.Where("subscription_id = ?", id).Delete(&domain.SubscriptionUser{}).Error
	}))
}

// Renew records a billing event and advances the end date
func (r *SubscriptionRepository) Renew(ctx context.Context, renewal *domain.SubscriptionRenewal) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subscription domain.Subscription
		if err := tx.First(&subscription, "id = ?", renewal.SubscriptionID).Error; err != nil {
			return err
		}
		if err := tx.Create(renewal).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{"status": domain.SubscriptionActive}
		if renewal.PeriodEnd != nil {
			updates["end_date"] = renewal.PeriodEnd
		}
		return tx.Model(&subscription).Updates(updates).Error
	}))
}

func (r *SubscriptionRepository) AddUser(ctx context.Context, seat *domain.SubscriptionUser) error {
	return translateError(r.db.WithContext(ctx).Create(seat).Error)
}

func (r *SubscriptionRepository) RemoveUser(ctx context.Context, subscriptionID, profileID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("subscription_id = ? AND profile_id = ?", subscriptionID, profileID).
		Delete(&domain.SubscriptionUser{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SweepExpired marks active subscriptions past their end date expired.
// Returns the number of subscriptions transitioned.
func (r *SubscriptionRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", domain.SubscriptionActive, now).
		Update("status", domain.SubscriptionExpired)
	return res.RowsAffected, translateError(res.Error)
}
