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

func setupAttendanceService(t *testing.T) (*service.AttendanceService, *service.EmployeeService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	log := testutil.Logger()

	employeeRepo := repository.NewEmployeeRepository(db)
	activity := service.NewActivityService(repository.NewActivityRepository(db), log)

	attendance := service.NewAttendanceService(
		repository.NewAttendanceRepository(db),
		employeeRepo,
		log,
	)
	employees := service.NewEmployeeService(
		employeeRepo,
		repository.NewProfileRepository(db),
		activity,
		log,
	)
	return attendance, employees, db
}

// =============================================================================
// Employees
// =============================================================================

func TestEmployeeService_Create(t *testing.T) {
	_, employees, db := setupAttendanceService(t)
	ctx := testutil.ActorContext("hr-1")
	profile := testutil.CreateTestProfile(t, db, "user-1")

	employee, err := employees.Create(ctx, &domain.CreateEmployeeRequest{
		EmployeeID: "EMP-001",
		ProfileID:  profile.ID,
		JobTitle:   "Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", employee.EmployeeID)
	assert.Equal(t, "hr-1", employee.CreatedBy)
}

func TestEmployeeService_Create_DuplicateBadge(t *testing.T) {
	_, employees, db := setupAttendanceService(t)
	ctx := testutil.ActorContext("hr-1")
	first := testutil.CreateTestProfile(t, db, "user-1")
	second := testutil.CreateTestProfile(t, db, "user-2")

	_, err := employees.Create(ctx, &domain.CreateEmployeeRequest{EmployeeID: "EMP-001", ProfileID: first.ID})
	require.NoError(t, err)

	_, err = employees.Create(ctx, &domain.CreateEmployeeRequest{EmployeeID: "EMP-001", ProfileID: second.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEmployeeService_Create_UnknownProfile(t *testing.T) {
	_, employees, _ := setupAttendanceService(t)
	ctx := testutil.ActorContext("hr-1")

	_, err := employees.Create(ctx, &domain.CreateEmployeeRequest{EmployeeID: "EMP-404", ProfileID: newUUID(t)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Punches
// =============================================================================

func TestAttendanceService_Punch_CheckInOpensPresent(t *testing.T) {
	attendance, _, db := setupAttendanceService(t)
	ctx := testutil.ActorContext("user-1")
	employee := testutil.CreateTestEmployee(t, db, "EMP-001")

	record, err := attendance.Punch(ctx, employee.ID, &domain.PunchRequest{RecordType: domain.RecordCheckIn})
	require.NoError(t, err)

	session, err := attendance.GetSession(ctx, record.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendancePresent, session.Status)
	assert.Equal(t, employee.ID, session.EmployeeID)
}

func TestAttendanceService_Punch_OneSessionPerDay(t *testing.T) {
	attendance, _, db := setupAttendanceService(t)
	ctx := testutil.ActorContext("user-1")
	employee := testutil.CreateTestEmployee(t, db, "EMP-001")

	when := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)
	later := when.Add(9 * time.Hour)

	in, err := attendance.Punch(ctx, employee.ID, &domain.PunchRequest{RecordType: domain.RecordCheckIn, OccurredAt: &when})
	require.NoError(t, err)
	out, err := attendance.Punch(ctx, employee.ID, &domain.PunchRequest{RecordType: domain.RecordCheckOut, OccurredAt: &later})
	require.NoError(t, err)

	assert.Equal(t, in.SessionID, out.SessionID)

	var count int64
	require.NoError(t, db.Model(&domain.AttendanceSession{}).Where("employee_id = ?", employee.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	session, err := attendance.GetSession(ctx, in.SessionID)
	require.NoError(t, err)
	assert.Len(t, session.Records, 2)
}

func TestAttendanceService_Punch_InvalidRecordType(t *testing.T) {
	attendance, _, db := setupAttendanceService(t)
	ctx := testutil.ActorContext("user-1")
	employee := testutil.CreateTestEmployee(t, db, "EMP-001")

	_, err := attendance.Punch(ctx, employee.ID, &domain.PunchRequest{RecordType: domain.AttendanceRecordType("nap")})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestAttendanceService_Punch_UnknownEmployee(t *testing.T) {
	attendance, _, _ := setupAttendanceService(t)
	ctx := testutil.ActorContext("user-1")

	_, err := attendance.Punch(ctx, newUUID(t), &domain.PunchRequest{RecordType: domain.RecordCheckIn})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Nightly sweep
// =============================================================================

func TestAttendanceService_SweepPending(t *testing.T) {
	attendance, _, db := setupAttendanceService(t)
	ctx := testutil.ActorContext("user-1")
	employee := testutil.CreateTestEmployee(t, db, "EMP-001")

	today := time.Now().UTC().Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1).Add(9 * time.Hour)

	// A break punch opens the session but leaves it pending
	stale, err := attendance.Punch(ctx, employee.ID, &domain.PunchRequest{RecordType: domain.RecordBreakStart, OccurredAt: &yesterday})
	require.NoError(t, err)

	fresh, err := attendance.Punch(ctx, employee.ID, &domain.PunchRequest{RecordType: domain.RecordBreakStart})
	require.NoError(t, err)

	swept, err := attendance.SweepPending(ctx, today)
	require.NoError(t, err)
	assert.EqualValues(t, 1, swept)

	staleSession, err := attendance.GetSession(ctx, stale.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceAbsent, staleSession.Status)

	// Today's session is untouched
	freshSession, err := attendance.GetSession(ctx, fresh.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendancePending, freshSession.Status)

	// A second sweep finds nothing left to settle
	swept, err = attendance.SweepPending(ctx, today)
	require.NoError(t, err)
	assert.EqualValues(t, 0, swept)
}

func TestAttendanceService_SetSessionStatus(t *testing.T) {
	attendance, _, db := setupAttendanceService(t)
	ctx := testutil.ActorContext("user-1")
	employee := testutil.CreateTestEmployee(t, db, "EMP-001")

	record, err := attendance.Punch(ctx, employee.ID, &domain.PunchRequest{RecordType: domain.RecordBreakStart})
	require.NoError(t, err)

	require.NoError(t, attendance.SetSessionStatus(ctx, record.SessionID, domain.AttendanceHoliday))

	session, err := attendance.GetSession(ctx, record.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceHoliday, session.Status)

	err = attendance.SetSessionStatus(ctx, record.SessionID, domain.AttendanceStatus("gone"))
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}
