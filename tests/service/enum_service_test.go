package service_test

import (
	"context"
	"testing"

	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"github.com/opscorehq/opscore-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnumService(t *testing.T) (*service.EnumService, *repository.EnumRepository) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEnumRepository(db)
	return service.NewEnumService(repo, testutil.Logger()), repo
}

func TestEnumService_SeedDefaults(t *testing.T) {
	svc, _ := setupEnumService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))

	statuses, err := svc.List(ctx, service.EnumTaskStatus)
	require.NoError(t, err)
	assert.Len(t, statuses, 4)

	priorities, err := svc.List(ctx, service.EnumTaskPriority)
	require.NoError(t, err)
	assert.Len(t, priorities, 4)
}

func TestEnumService_SeedDefaults_Idempotent(t *testing.T) {
	svc, _ := setupEnumService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	require.NoError(t, svc.SeedDefaults(ctx))

	statuses, err := svc.List(ctx, service.EnumTaskStatus)
	require.NoError(t, err)
	assert.Len(t, statuses, 4)
}

func TestEnumService_Create_DuplicateValue(t *testing.T) {
	svc, _ := setupEnumService(t)
	ctx := testutil.ActorContext("admin-1")

	_, err := svc.Create(ctx, &domain.CreateEnumOptionRequest{
		EnumType: service.EnumTaskStatus,
		Value:    "blocked",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateEnumOptionRequest{
		EnumType: service.EnumTaskStatus,
		Value:    "blocked",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEnumService_Create_SameValueDifferentType(t *testing.T) {
	svc, _ := setupEnumService(t)
	ctx := testutil.ActorContext("admin-1")

	_, err := svc.Create(ctx, &domain.CreateEnumOptionRequest{
		EnumType: service.EnumTaskStatus,
		Value:    "urgent",
	})
	require.NoError(t, err)

	// Uniqueness is per vocabulary, not global
	_, err = svc.Create(ctx, &domain.CreateEnumOptionRequest{
		EnumType: service.EnumTaskPriority,
		Value:    "urgent",
	})
	assert.NoError(t, err)
}

func TestEnumService_Deactivate(t *testing.T) {
	svc, repo := setupEnumService(t)
	ctx := testutil.ActorContext("admin-1")

	option, err := svc.Create(ctx, &domain.CreateEnumOptionRequest{
		EnumType: service.EnumTaskStatus,
		Value:    "blocked",
	})
	require.NoError(t, err)

	ok, err := repo.IsValid(ctx, service.EnumTaskStatus, "blocked")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Deactivate(ctx, option.ID))

	ok, err = repo.IsValid(ctx, service.EnumTaskStatus, "blocked")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnumService_Deactivate_NotFound(t *testing.T) {
	svc, _ := setupEnumService(t)
	ctx := testutil.ActorContext("admin-1")

	err := svc.Deactivate(ctx, newUUID(t))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
