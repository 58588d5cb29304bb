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

func setupVaultService(t *testing.T) *service.VaultService {
	db := testutil.SetupTestDB(t)
	log := testutil.Logger()
	activity := service.NewActivityService(repository.NewActivityRepository(db), log)
	return service.NewVaultService(repository.NewVaultRepository(db), activity, log)
}

// =============================================================================
// Identity requirement
// =============================================================================

func TestVaultService_RequiresActor(t *testing.T) {
	svc := setupVaultService(t)
	ctx := context.Background()

	_, err := svc.CreatePassword(ctx, &domain.CreateVaultPasswordRequest{
		Title:              "No actor",
		PasswordCiphertext: "ciphertext",
	})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = svc.ListPasswords(ctx)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = svc.ListDocuments(ctx)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

// =============================================================================
// Creator isolation
// =============================================================================

func TestVaultService_Passwords_CreatorOnly(t *testing.T) {
	svc := setupVaultService(t)
	alice := testutil.ActorContext("alice")
	bob := testutil.ActorContext("bob")

	created, err := svc.CreatePassword(alice, &domain.CreateVaultPasswordRequest{
		Title:              "Prod database",
		Username:           "admin",
		PasswordCiphertext: "encrypted-blob",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.CreatedBy)

	// The creator sees it
	got, err := svc.GetPassword(alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Prod database", got.Title)

	// Anyone else does not, and cannot tell it exists
	_, err = svc.GetPassword(bob, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mine, err := svc.ListPasswords(bob)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestVaultService_Documents_CreatorOnly(t *testing.T) {
	svc := setupVaultService(t)
	alice := testutil.ActorContext("alice")
	bob := testutil.ActorContext("bob")

	doc, err := svc.CreateDocument(alice, &domain.CreateVaultDocumentRequest{
		Title:       "Signed contract",
		StoragePath: "vault/contracts/2026/signed.pdf",
		MimeType:    "application/pdf",
	})
	require.NoError(t, err)

	_, err = svc.GetDocument(bob, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteDocument(bob, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Still intact for the owner after the failed delete
	got, err := svc.GetDocument(alice, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Signed contract", got.Title)
}

func TestVaultService_Cards_CreatorOnly(t *testing.T) {
	svc := setupVaultService(t)
	alice := testutil.ActorContext("alice")
	bob := testutil.ActorContext("bob")

	card, err := svc.CreateCard(alice, &domain.CreateVaultCardRequest{
		Title:            "Company card",
		CardholderName:   "Alice Example",
		NumberCiphertext: "encrypted-number",
		LastFour:         "4242",
		ExpiryMonth:      12,
		ExpiryYear:       2028,
	})
	require.NoError(t, err)

	aliceCards, err := svc.ListCards(alice)
	require.NoError(t, err)
	require.Len(t, aliceCards, 1)
	assert.Equal(t, "4242", aliceCards[0].LastFour)

	bobCards, err := svc.ListCards(bob)
	require.NoError(t, err)
	assert.Empty(t, bobCards)

	_, err = svc.GetCard(bob, card.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVaultService_DeletePassword(t *testing.T) {
	svc := setupVaultService(t)
	alice := testutil.ActorContext("alice")

	created, err := svc.CreatePassword(alice, &domain.CreateVaultPasswordRequest{
		Title:              "Old wifi",
		PasswordCiphertext: "encrypted",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePassword(alice, created.ID))

	_, err = svc.GetPassword(alice, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
