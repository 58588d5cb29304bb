package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"github.com/opscorehq/opscore-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAnnouncementService(t *testing.T) (*service.AnnouncementService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	log := testutil.Logger()
	activity := service.NewActivityService(repository.NewActivityRepository(db), log)
	svc := service.NewAnnouncementService(repository.NewAnnouncementRepository(db), activity, log)
	return svc, db
}

func publishedNow() *time.Time {
	at := time.Now().UTC().Add(-time.Hour)
	return &at
}

// =============================================================================
// Create
// =============================================================================

func TestAnnouncementService_Create_Defaults(t *testing.T) {
	svc, _ := setupAnnouncementService(t)
	ctx := testutil.ActorContext("admin-1")

	announcement, err := svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title: "Office closed Friday",
		Body:  "Maintenance work on the HVAC system.",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AnnouncementGeneral, announcement.Type)
	assert.Equal(t, domain.AnnouncementPriorityNormal, announcement.Priority)
	assert.Equal(t, domain.AudienceAll, announcement.TargetAudience)
	assert.Equal(t, "admin-1", announcement.CreatedBy)
}

func TestAnnouncementService_Create_VerticalAudienceNeedsVertical(t *testing.T) {
	svc, _ := setupAnnouncementService(t)
	ctx := testutil.ActorContext("admin-1")

	_, err := svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title:          "Sales only",
		Body:           "Quota update.",
		TargetAudience: domain.AudienceVertical,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnnouncementService_Create_InvalidType(t *testing.T) {
	svc, _ := setupAnnouncementService(t)
	ctx := testutil.ActorContext("admin-1")

	_, err := svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title: "Oops",
		Body:  "Bad type.",
		Type:  domain.AnnouncementType("gossip"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

// =============================================================================
// Active window and vertical scoping
// =============================================================================

func TestAnnouncementService_ListActive_Window(t *testing.T) {
	svc, _ := setupAnnouncementService(t)
	ctx := testutil.ActorContext("admin-1")
	now := time.Now().UTC()

	futurePublish := now.Add(24 * time.Hour)
	expired := now.Add(-time.Minute)

	live, err := svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title: "Live", Body: "b", PublishedAt: publishedNow(),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title: "Draft", Body: "b",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title: "Scheduled", Body: "b", PublishedAt: &futurePublish,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title: "Expired", Body: "b", PublishedAt: publishedNow(), ExpiresAt: &expired,
	})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx, nil)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, live.ID, active[0].ID)
}

func TestAnnouncementService_ListActive_VerticalScoping(t *testing.T) {
	svc, db := setupAnnouncementService(t)
	ctx := testutil.ActorContext("admin-1")

	sales := testutil.CreateTestVertical(t, db, "sales")
	support := testutil.CreateTestVertical(t, db, "support")

	global, err := svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title: "Everyone", Body: "b", PublishedAt: publishedNow(),
	})
	require.NoError(t, err)

	salesOnly, err := svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title:          "Sales news",
		Body:           "b",
		TargetAudience: domain.AudienceVertical,
		VerticalID:     &sales.ID,
		PublishedAt:    publishedNow(),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateAnnouncementRequest{
		Title:          "Support news",
		Body:           "b",
		TargetAudience: domain.AudienceVertical,
		VerticalID:     &support.ID,
		PublishedAt:    publishedNow(),
	})
	require.NoError(t, err)

	visible, err := svc.ListActive(ctx, &sales.ID)
	require.NoError(t, err)
	require.Len(t, visible, 2)

	ids := []uuid.UUID{visible[0].ID, visible[1].ID}
	assert.Contains(t, ids, global.ID)
	assert.Contains(t, ids, salesOnly.ID)
}

// =============================================================================
// Views
// =============================================================================

func TestAnnouncementService_MarkViewed_Idempotent(t *testing.T) {
	svc, _ := setupAnnouncementService(t)
	alice := testutil.ActorContext("alice")
	bob := testutil.ActorContext("bob")

	announcement, err := svc.Create(alice, &domain.CreateAnnouncementRequest{
		Title: "Read me", Body: "b", PublishedAt: publishedNow(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkViewed(alice, announcement.ID))
	require.NoError(t, svc.MarkViewed(alice, announcement.ID))
	require.NoError(t, svc.MarkViewed(bob, announcement.ID))

	count, err := svc.ViewCount(alice, announcement.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestAnnouncementService_MarkViewed_NotFound(t *testing.T) {
	svc, _ := setupAnnouncementService(t)
	ctx := testutil.ActorContext("alice")

	err := svc.MarkViewed(ctx, newUUID(t))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
