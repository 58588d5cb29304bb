package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An employee's badge is a plain string; sessions reference the employee row
// by its uuid primary key, not the badge.
func TestEmployeeRepository_Create_BadgeIsNotASessionKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	ctx := context.Background()

	profile := testutil.CreateTestProfile(t, db, "user-badge")

	employee := &domain.Employee{
		EmployeeID: "EMP-001",
		ProfileID:  profile.ID,
		JobTitle:   "Engineer",
	}
	require.NoError(t, employeeRepo.Create(ctx, employee))

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	session, err := attendanceRepo.GetOrCreateSession(ctx, employee.ID, day)
	require.NoError(t, err)
	assert.Equal(t, employee.ID, session.EmployeeID)

	// A session for a nonexistent employee trips the foreign key
	_, err = attendanceRepo.GetOrCreateSession(ctx, uuid.New(), day)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
