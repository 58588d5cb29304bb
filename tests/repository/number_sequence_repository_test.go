package repository_test

import (
	"context"
	"testing"

	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberSequenceRepository_FirstIssueIsOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNumberSequenceRepository(db)

	n, err := repo.Next(context.Background(), repository.SequenceTickets)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNumberSequenceRepository_Monotonic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNumberSequenceRepository(db)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		n, err := repo.Next(ctx, repository.SequenceQuotations)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}

func TestNumberSequenceRepository_KeysAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNumberSequenceRepository(db)
	ctx := context.Background()

	_, err := repo.Next(ctx, repository.SequenceTickets)
	require.NoError(t, err)
	_, err = repo.Next(ctx, repository.SequenceTickets)
	require.NoError(t, err)

	n, err := repo.Next(ctx, repository.SequenceQuotations)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
