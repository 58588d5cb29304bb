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

func setupLeaveService(t *testing.T) (*service.LeaveService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	log := testutil.Logger()

	activity := service.NewActivityService(repository.NewActivityRepository(db), log)
	notifications := service.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewProfileRepository(db),
		log,
	)

	svc := service.NewLeaveService(
		repository.NewLeaveRepository(db),
		repository.NewProfileRepository(db),
		notifications,
		activity,
		log,
	)
	return svc, db
}

func leaveDates() (time.Time, time.Time) {
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 4)
}

// =============================================================================
// Request
// =============================================================================

func TestLeaveService_Request(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("user-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")
	start, end := leaveDates()

	request, err := svc.Request(ctx, profile.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveVacation,
		StartDate: start,
		EndDate:   end,
		Reason:    "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.LeavePending, request.Status)
	assert.Equal(t, profile.ID, request.ProfileID)
	assert.Nil(t, request.DecidedAt)
}

func TestLeaveService_Request_InvalidType(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("user-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")
	start, end := leaveDates()

	_, err := svc.Request(ctx, profile.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveType("sabbatical"),
		StartDate: start,
		EndDate:   end,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestLeaveService_Request_EndsBeforeStart(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("user-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")
	start, end := leaveDates()

	_, err := svc.Request(ctx, profile.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveSick,
		StartDate: end,
		EndDate:   start,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLeaveService_Request_UnknownProfile(t *testing.T) {
	svc, _ := setupLeaveService(t)
	ctx := testutil.ActorContext("user-1")
	start, end := leaveDates()

	_, err := svc.Request(ctx, newUUID(t), &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveSick,
		StartDate: start,
		EndDate:   end,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Decide
// =============================================================================

func TestLeaveService_Decide_Approve(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("manager-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")
	approver := testutil.CreateTestProfile(t, db, "manager-1")
	start, end := leaveDates()

	request, err := svc.Request(ctx, profile.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveVacation,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, request.ID, &domain.DecideLeaveRequest{
		Status:     domain.LeaveApproved,
		ApproverID: approver.ID,
	}))

	decided, err := svc.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveApproved, decided.Status)
	require.NotNil(t, decided.ApproverID)
	assert.Equal(t, approver.ID, *decided.ApproverID)
	assert.NotNil(t, decided.DecidedAt)
}

func TestLeaveService_Decide_OnlyApproveOrReject(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("manager-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")
	approver := testutil.CreateTestProfile(t, db, "manager-1")
	start, end := leaveDates()

	request, err := svc.Request(ctx, profile.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveSick,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	err = svc.Decide(ctx, request.ID, &domain.DecideLeaveRequest{
		Status:     domain.LeaveCancelled,
		ApproverID: approver.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestLeaveService_Decide_Twice(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("manager-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")
	approver := testutil.CreateTestProfile(t, db, "manager-1")
	start, end := leaveDates()

	request, err := svc.Request(ctx, profile.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveVacation,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, request.ID, &domain.DecideLeaveRequest{
		Status:     domain.LeaveApproved,
		ApproverID: approver.ID,
	}))

	// A decided request is no longer pending, so a second decision conflicts
	err = svc.Decide(ctx, request.ID, &domain.DecideLeaveRequest{
		Status:     domain.LeaveRejected,
		ApproverID: approver.ID,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// =============================================================================
// Cancel
// =============================================================================

func TestLeaveService_Cancel_OwnPending(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("user-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")
	start, end := leaveDates()

	request, err := svc.Request(ctx, profile.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeavePersonal,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, request.ID, profile.ID))

	cancelled, err := svc.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveCancelled, cancelled.Status)
}

func TestLeaveService_Cancel_OtherProfile(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("user-1")
	owner := testutil.CreateTestProfile(t, db, "user-1")
	other := testutil.CreateTestProfile(t, db, "user-2")
	start, end := leaveDates()

	request, err := svc.Request(ctx, owner.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveVacation,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	err = svc.Cancel(ctx, request.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLeaveService_Cancel_AlreadyDecided(t *testing.T) {
	svc, db := setupLeaveService(t)
	ctx := testutil.ActorContext("user-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")
	approver := testutil.CreateTestProfile(t, db, "manager-1")
	start, end := leaveDates()

	request, err := svc.Request(ctx, profile.ID, &domain.CreateLeaveRequest{
		LeaveType: domain.LeaveVacation,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, request.ID, &domain.DecideLeaveRequest{
		Status:     domain.LeaveApproved,
		ApproverID: approver.ID,
	}))

	err = svc.Cancel(ctx, request.ID, profile.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
