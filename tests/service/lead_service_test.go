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

func setupLeadService(t *testing.T) (*service.LeadService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	log := testutil.Logger()
	activity := service.NewActivityService(repository.NewActivityRepository(db), log)

	svc := service.NewLeadService(
		repository.NewLeadRepository(db),
		repository.NewOpportunityRepository(db),
		repository.NewQuotationRepository(db),
		repository.NewNumberSequenceRepository(db),
		activity,
		log,
	)
	return svc, db
}

// =============================================================================
// Create
// =============================================================================

func TestLeadService_Create_Defaults(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	lead, err := svc.Create(ctx, &domain.CreateLeadRequest{
		Title: "New office fit-out",
		Value: 25000,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.Equal(t, "USD", lead.Currency)
	assert.Equal(t, "user-1", lead.CreatedBy)
}

func TestLeadService_Create_InvalidStatus(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	_, err := svc.Create(ctx, &domain.CreateLeadRequest{
		Title:  "Bad status",
		Status: domain.LeadStatus("frozen"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

// =============================================================================
// Status transitions
// =============================================================================

func TestLeadService_ChangeStatus_RecordsHistory(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	lead, err := svc.Create(ctx, &domain.CreateLeadRequest{Title: "History lead"})
	require.NoError(t, err)

	require.NoError(t, svc.ChangeStatus(ctx, lead.ID, &domain.ChangeStatusRequest{Status: "contacted"}))
	require.NoError(t, svc.ChangeStatus(ctx, lead.ID, &domain.ChangeStatusRequest{Status: "qualified", Note: "budget confirmed"}))

	updated, err := svc.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusQualified, updated.Status)

	history, err := svc.StatusHistory(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	statuses := []string{history[0].ToStatus, history[1].ToStatus}
	assert.Contains(t, statuses, "contacted")
	assert.Contains(t, statuses, "qualified")
	for _, entry := range history {
		assert.Equal(t, "user-1", entry.ChangedBy)
	}
}

func TestLeadService_ChangeStatus_InvalidStatus(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	lead, err := svc.Create(ctx, &domain.CreateLeadRequest{Title: "Lead"})
	require.NoError(t, err)

	err = svc.ChangeStatus(ctx, lead.ID, &domain.ChangeStatusRequest{Status: "abandoned"})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

// =============================================================================
// Conversion
// =============================================================================

func TestLeadService_Convert(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	lead, err := svc.Create(ctx, &domain.CreateLeadRequest{Title: "Convertible lead"})
	require.NoError(t, err)

	opp, err := svc.Convert(ctx, lead.ID, &domain.ConvertLeadRequest{Amount: 12000})
	require.NoError(t, err)
	assert.Equal(t, lead.ID, opp.LeadID)
	assert.Equal(t, float64(12000), opp.Amount)
}

func TestLeadService_Convert_OnlyOnce(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	lead, err := svc.Create(ctx, &domain.CreateLeadRequest{Title: "Single conversion"})
	require.NoError(t, err)

	_, err = svc.Convert(ctx, lead.ID, &domain.ConvertLeadRequest{Amount: 5000})
	require.NoError(t, err)

	_, err = svc.Convert(ctx, lead.ID, &domain.ConvertLeadRequest{Amount: 6000})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLeadService_Convert_LeadNotFound(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	_, err := svc.Convert(ctx, newUUID(t), &domain.ConvertLeadRequest{Amount: 5000})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Quotations
// =============================================================================

func TestLeadService_IssueQuotation_Numbering(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	lead, err := svc.Create(ctx, &domain.CreateLeadRequest{Title: "Quoted lead", Currency: "NOK"})
	require.NoError(t, err)

	first, err := svc.IssueQuotation(ctx, &domain.CreateQuotationRequest{LeadID: lead.ID, Amount: 1000})
	require.NoError(t, err)
	assert.Equal(t, "QUO-000001", first.QuoteNumber)
	// Currency falls back to the lead's when the request leaves it blank
	assert.Equal(t, "NOK", first.Currency)

	second, err := svc.IssueQuotation(ctx, &domain.CreateQuotationRequest{LeadID: lead.ID, Amount: 2000, Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, "QUO-000002", second.QuoteNumber)
	assert.Equal(t, "EUR", second.Currency)

	quotations, err := svc.Quotations(ctx, lead.ID)
	require.NoError(t, err)
	assert.Len(t, quotations, 2)
}

// =============================================================================
// Soft delete and restore
// =============================================================================

func TestLeadService_DeleteAndRestore(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	lead, err := svc.Create(ctx, &domain.CreateLeadRequest{Title: "Recoverable lead"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, lead.ID))

	_, err = svc.GetByID(ctx, lead.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Restore(ctx, lead.ID))

	restored, err := svc.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Recoverable lead", restored.Title)
}

func TestLeadService_Restore_NotDeleted(t *testing.T) {
	svc, _ := setupLeadService(t)
	ctx := testutil.ActorContext("user-1")

	lead, err := svc.Create(ctx, &domain.CreateLeadRequest{Title: "Live lead"})
	require.NoError(t, err)

	err = svc.Restore(ctx, lead.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
