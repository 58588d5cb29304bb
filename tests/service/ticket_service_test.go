package service_test

import (
	"testing"

	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"github.com/opscorehq/opscore-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTicketService(t *testing.T) (*service.TicketService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	log := testutil.Logger()

	activity := service.NewActivityService(repository.NewActivityRepository(db), log)
	notifications := service.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewProfileRepository(db),
		log,
	)

	svc := service.NewTicketService(
		repository.NewTicketRepository(db),
		repository.NewCommentRepository(db),
		repository.NewNumberSequenceRepository(db),
		notifications,
		activity,
		log,
	)
	return svc, db
}

// =============================================================================
// Create and numbering
// =============================================================================

func TestTicketService_Create_NumbersAreSequential(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := testutil.ActorContext("agent-1")

	first, err := svc.Create(ctx, &domain.CreateTicketRequest{Subject: "Printer on fire"})
	require.NoError(t, err)
	assert.Equal(t, "TCK-000001", first.TicketNumber)
	assert.Equal(t, domain.TicketStatusNew, first.Status)
	assert.Equal(t, domain.TicketPriorityMedium, first.Priority)

	second, err := svc.Create(ctx, &domain.CreateTicketRequest{Subject: "VPN down", Priority: domain.TicketPriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "TCK-000002", second.TicketNumber)
	assert.Equal(t, domain.TicketPriorityHigh, second.Priority)
}

func TestTicketService_Create_InvalidPriority(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := testutil.ActorContext("agent-1")

	_, err := svc.Create(ctx, &domain.CreateTicketRequest{
		Subject:  "Bad priority",
		Priority: domain.TicketPriority("blocker"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestTicketService_GetByNumber(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := testutil.ActorContext("agent-1")

	created, err := svc.Create(ctx, &domain.CreateTicketRequest{Subject: "Lookup me"})
	require.NoError(t, err)

	found, err := svc.GetByNumber(ctx, created.TicketNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByNumber(ctx, "TCK-999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Status changes
// =============================================================================

func TestTicketService_ChangeStatus_RecordsHistory(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := testutil.ActorContext("agent-1")

	ticket, err := svc.Create(ctx, &domain.CreateTicketRequest{Subject: "Tracked ticket"})
	require.NoError(t, err)

	require.NoError(t, svc.ChangeStatus(ctx, ticket.ID, &domain.ChangeStatusRequest{Status: "in_progress"}))

	updated, err := svc.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)

	history, err := svc.StatusHistory(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "in_progress", history[0].ToStatus)
	assert.Equal(t, "agent-1", history[0].ChangedBy)
}

func TestTicketService_ChangeStatus_InvalidStatus(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := testutil.ActorContext("agent-1")

	ticket, err := svc.Create(ctx, &domain.CreateTicketRequest{Subject: "Ticket"})
	require.NoError(t, err)

	err = svc.ChangeStatus(ctx, ticket.ID, &domain.ChangeStatusRequest{Status: "snoozed"})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestTicketService_Resolve(t *testing.T) {
	svc, db := setupTicketService(t)
	ctx := testutil.ActorContext("agent-1")

	resolver := testutil.CreateTestProfile(t, db, "resolver-1")
	ticket, err := svc.Create(ctx, &domain.CreateTicketRequest{Subject: "Fix me"})
	require.NoError(t, err)

	require.NoError(t, svc.Resolve(ctx, ticket.ID, &domain.ResolveTicketRequest{
		ResolvedByID: resolver.ID,
		Note:         "rebooted the printer",
	}))

	resolved, err := svc.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, resolved.Status)
}

// =============================================================================
// Assignments and comments
// =============================================================================

func TestTicketService_Assign_Duplicate(t *testing.T) {
	svc, db := setupTicketService(t)
	ctx := testutil.ActorContext("agent-1")

	profile := testutil.CreateTestProfile(t, db, "assignee-1")
	ticket, err := svc.Create(ctx, &domain.CreateTicketRequest{Subject: "Shared ticket"})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, ticket.ID, profile.ID)
	require.NoError(t, err)

	_, err = svc.Assign(ctx, ticket.ID, profile.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTicketService_Comments(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := testutil.ActorContext("agent-2")

	ticket, err := svc.Create(ctx, &domain.CreateTicketRequest{Subject: "Discussed"})
	require.NoError(t, err)

	_, err = svc.Comment(ctx, ticket.ID, &domain.CreateCommentRequest{Body: "Escalating"})
	require.NoError(t, err)

	comments, err := svc.Comments(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "agent-2", comments[0].AuthorID)
}
