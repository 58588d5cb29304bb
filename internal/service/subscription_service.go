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

// SubscriptionService tracks vendor subscriptions, seats and renewals
type SubscriptionService struct {
	subscriptionRepo *repository.SubscriptionRepository
	activity         *ActivityService
	logger           *zap.Logger
}

func NewSubscriptionService(subscriptionRepo *repository.SubscriptionRepository, activity *ActivityService, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo, activity: activity, logger: logger}
}

func (s *SubscriptionService) Create(ctx context.Context, req *domain.CreateSubscriptionRequest) (*domain.Subscription, error) {
	autoRenewal := req.AutoRenewal
	if autoRenewal == "" {
		autoRenewal = domain.AutoRenewalDisabled
	}
	if !autoRenewal.IsValid() {
		return nil, fmt.Errorf("%w: auto renewal %q", domain.ErrInvalidEnum, autoRenewal)
	}
	billingCycle := req.BillingCycle
	if billingCycle == "" {
		billingCycle = domain.BillingMonthly
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("%w: billing cycle %q", domain.ErrInvalidEnum, billingCycle)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	subscription := &domain.Subscription{
		Name:            req.Name,
		Vendor:          req.Vendor,
		Status:          domain.SubscriptionActive,
		AutoRenewal:     autoRenewal,
		BillingCycle:    billingCycle,
		Cost:            req.Cost,
		Currency:        currency,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		OwnerID:         req.OwnerID,
		TeamID:          req.TeamID,
		VendorContactID: req.VendorContactID,
	}
	subscription.CreatedBy = actorSubject(ctx)

	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	s.activity.Record(ctx, "created", "subscription", &subscription.ID, subscription.Name)
	return subscription, nil
}

func (s *SubscriptionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	return s.subscriptionRepo.GetByID(ctx, id)
}

func (s *SubscriptionService) List(ctx context.Context, params domain.ListParams, filter repository.SubscriptionFilter) (*domain.PagedResponse[domain.Subscription], error) {
	params.Normalize()
	subscriptions, total, err := s.subscriptionRepo.List(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return domain.NewPagedResponse(subscriptions, params, total), nil
}

func (s *SubscriptionService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateSubscriptionRequest) (*domain.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AutoRenewal != "" {
		if !req.AutoRenewal.IsValid() {
			return nil, fmt.Errorf("%w: auto renewal %q", domain.ErrInvalidEnum, req.AutoRenewal)
		}
		subscription.AutoRenewal = req.AutoRenewal
	}
	if req.BillingCycle != "" {
		if !req.BillingCycle.IsValid() {
			return nil, fmt.Errorf("%w: billing cycle %q", domain.ErrInvalidEnum, req.BillingCycle)
		}
		subscription.BillingCycle = req.BillingCycle
	}
	subscription.Name = req.Name
	subscription.Vendor = req.Vendor
	subscription.Cost = req.Cost
	if req.Currency != "" {
		subscription.Currency = req.Currency
	}
	subscription.StartDate = req.StartDate
	subscription.EndDate = req.EndDate
	subscription.OwnerID = req.OwnerID
	subscription.TeamID = req.TeamID
	subscription.VendorContactID = req.VendorContactID

	if err := s.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	s.activity.Record(ctx, "updated", "subscription", &subscription.ID, subscription.Name)
	return subscription, nil
}

// ChangeStatus moves a subscription through its lifecycle
func (s *SubscriptionService) ChangeStatus(ctx context.Context, id uuid.UUID, status domain.SubscriptionStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: subscription status %q", domain.ErrInvalidEnum, status)
	}
	subscription, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	subscription.Status = status
	if err := s.subscriptionRepo.Update(ctx, subscription); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	s.activity.Record(ctx, "status_changed", "subscription", &id, string(status))
	return nil
}

func (s *SubscriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.subscriptionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "subscription", &id, "")
	return nil
}

// Renew records a billing event, reactivates the subscription and extends its
// end date
func (s *SubscriptionService) Renew(ctx context.Context, id uuid.UUID, req *domain.RenewSubscriptionRequest) (*domain.SubscriptionRenewal, error) {
	if _, err := s.subscriptionRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	renewal := &domain.SubscriptionRenewal{
		SubscriptionID: id,
		RenewedAt:      time.Now().UTC(),
		PeriodEnd:      req.PeriodEnd,
		Amount:         req.Amount,
		Note:           req.Note,
	}
	if err := s.subscriptionRepo.Renew(ctx, renewal); err != nil {
		return nil, fmt.Errorf("failed to renew subscription: %w", err)
	}

	s.activity.Record(ctx, "renewed", "subscription", &id, "")
	return renewal, nil
}

// AddUser grants a profile a seat; the pair is unique
func (s *SubscriptionService) AddUser(ctx context.Context, subscriptionID uuid.UUID, req *domain.AddSubscriptionUserRequest) (*domain.SubscriptionUser, error) {
	if _, err := s.subscriptionRepo.GetByID(ctx, subscriptionID); err != nil {
		return nil, err
	}

	accessLevel := req.AccessLevel
	if accessLevel == "" {
		accessLevel = domain.AccessUser
	}
	if !accessLevel.IsValid() {
		return nil, fmt.Errorf("%w: access level %q", domain.ErrInvalidEnum, accessLevel)
	}

	seat := &domain.SubscriptionUser{
		SubscriptionID: subscriptionID,
		ProfileID:      req.ProfileID,
		AccessLevel:    accessLevel,
	}
	if err := s.subscriptionRepo.AddUser(ctx, seat); err != nil {
		return nil, err
	}
	return seat, nil
}

func (s *SubscriptionService) RemoveUser(ctx context.Context, subscriptionID, profileID uuid.UUID) error {
	return s.subscriptionRepo.RemoveUser(ctx, subscriptionID, profileID)
}

// SweepExpired marks active subscriptions past their end date as expired.
// Run nightly by the scheduler.
func (s *SubscriptionService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	swept, err := s.subscriptionRepo.SweepExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired subscriptions: %w", err)
	}
	if swept > 0 {
		s.logger.Info("swept expired subscriptions", zap.Int64("count", swept))
	}
	return swept, nil
}
