package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/auth"
	"github.com/opscorehq/opscore-api/internal/database"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an isolated in-memory SQLite database and migrates the
// full schema into it. Every call gets a fresh database, so tests never see
// each other's rows.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A unique name per call keeps the shared cache private to this test
	// while still letting the pool open more than one connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, db.AutoMigrate(database.Models()...), "failed to migrate test schema")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// Logger returns a no-op logger for wiring services under test
func Logger() *zap.Logger {
	return zap.NewNop()
}

// ActorContext returns a context carrying the given identity subject, the way
// the auth middleware would after verifying a token
func ActorContext(subject string) context.Context {
	return auth.WithActorContext(context.Background(), &auth.ActorContext{
		Subject:     subject,
		DisplayName: "Test User",
		Email:       subject + "@example.com",
	})
}

// CreateTestProfile inserts a profile for the given external user id
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string) *domain.Profile {
	t.Helper()

	profile := &domain.Profile{
		UserID:      userID,
		FirstName:   "Test",
		LastName:    "User",
		DisplayName: "Test User",
		Email:       userID + "@example.com",
		IsActive:    true,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// CreateTestEmployee inserts an employee with a fresh backing profile
func CreateTestEmployee(t *testing.T, db *gorm.DB, employeeID string) *domain.Employee {
	t.Helper()

	profile := CreateTestProfile(t, db, "user-"+employeeID)
	employee := &domain.Employee{
		EmployeeID: employeeID,
		ProfileID:  profile.ID,
		JobTitle:   "Engineer",
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

// CreateTestVertical inserts a vertical with the given code
func CreateTestVertical(t *testing.T, db *gorm.DB, code string) *domain.Vertical {
	t.Helper()

	vertical := &domain.Vertical{
		Code:     code,
		Name:     "Vertical " + code,
		IsActive: true,
	}
	require.NoError(t, db.Create(vertical).Error)
	return vertical
}
