package service_test

import (
	"testing"
	"time"

	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"github.com/opscorehq/opscore-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSubscriptionService(t *testing.T) (*service.SubscriptionService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	log := testutil.Logger()
	activity := service.NewActivityService(repository.NewActivityRepository(db), log)
	svc := service.NewSubscriptionService(repository.NewSubscriptionRepository(db), activity, log)
	return svc, db
}

// =============================================================================
// Create
// =============================================================================

func TestSubscriptionService_Create_Defaults(t *testing.T) {
	svc, _ := setupSubscriptionService(t)
	ctx := testutil.ActorContext("user-1")

	subscription, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{
		Name: "Figma",
		Cost: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubscriptionActive, subscription.Status)
	assert.Equal(t, domain.BillingMonthly, subscription.BillingCycle)
	assert.Equal(t, "USD", subscription.Currency)
}

func TestSubscriptionService_Create_InvalidBillingCycle(t *testing.T) {
	svc, _ := setupSubscriptionService(t)
	ctx := testutil.ActorContext("user-1")

	_, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{
		Name:         "Weird SaaS",
		BillingCycle: domain.BillingCycle("fortnightly"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

// =============================================================================
// Seats
// =============================================================================

func TestSubscriptionService_AddUser(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	ctx := testutil.ActorContext("user-1")
	profile := testutil.CreateTestProfile(t, db, "seat-holder")

	subscription, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{Name: "Slack"})
	require.NoError(t, err)

	seat, err := svc.AddUser(ctx, subscription.ID, &domain.AddSubscriptionUserRequest{ProfileID: profile.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.AccessUser, seat.AccessLevel)
}

func TestSubscriptionService_AddUser_Duplicate(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	ctx := testutil.ActorContext("user-1")
	profile := testutil.CreateTestProfile(t, db, "seat-holder")

	subscription, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{Name: "Slack"})
	require.NoError(t, err)

	_, err = svc.AddUser(ctx, subscription.ID, &domain.AddSubscriptionUserRequest{ProfileID: profile.ID})
	require.NoError(t, err)

	_, err = svc.AddUser(ctx, subscription.ID, &domain.AddSubscriptionUserRequest{ProfileID: profile.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// =============================================================================
// Renewals
// =============================================================================

func TestSubscriptionService_Renew(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	ctx := testutil.ActorContext("user-1")

	subscription, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{Name: "Jira"})
	require.NoError(t, err)

	periodEnd := time.Now().UTC().AddDate(1, 0, 0)
	renewal, err := svc.Renew(ctx, subscription.ID, &domain.RenewSubscriptionRequest{
		PeriodEnd: &periodEnd,
		Amount:    1200,
		Note:      "annual renewal",
	})
	require.NoError(t, err)
	assert.Equal(t, subscription.ID, renewal.SubscriptionID)

	var count int64
	require.NoError(t, db.Model(&domain.SubscriptionRenewal{}).
		Where("subscription_id = ?", subscription.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubscriptionService_Renew_NotFound(t *testing.T) {
	svc, _ := setupSubscriptionService(t)
	ctx := testutil.ActorContext("user-1")

	_, err := svc.Renew(ctx, newUUID(t), &domain.RenewSubscriptionRequest{Amount: 100})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Nightly sweep
// =============================================================================

func TestSubscriptionService_SweepExpired(t *testing.T) {
	svc, _ := setupSubscriptionService(t)
	ctx := testutil.ActorContext("user-1")
	now := time.Now().UTC()

	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	lapsed, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{Name: "Lapsed", EndDate: &past})
	require.NoError(t, err)
	running, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{Name: "Running", EndDate: &future})
	require.NoError(t, err)
	openEnded, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{Name: "Open-ended"})
	require.NoError(t, err)

	swept, err := svc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, swept)

	got, err := svc.GetByID(ctx, lapsed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionExpired, got.Status)

	got, err = svc.GetByID(ctx, running.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, got.Status)

	got, err = svc.GetByID(ctx, openEnded.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, got.Status)
}

func TestSubscriptionService_ChangeStatus(t *testing.T) {
	svc, _ := setupSubscriptionService(t)
	ctx := testutil.ActorContext("user-1")

	subscription, err := svc.Create(ctx, &domain.CreateSubscriptionRequest{Name: "Notion"})
	require.NoError(t, err)

	require.NoError(t, svc.ChangeStatus(ctx, subscription.ID, domain.SubscriptionCancelled))

	got, err := svc.GetByID(ctx, subscription.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionCancelled, got.Status)

	err = svc.ChangeStatus(ctx, subscription.ID, domain.SubscriptionStatus("frozen"))
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}
