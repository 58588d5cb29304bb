package repository_test

import (
	"context"
	"testing"

	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

// =============================================================================
// Task delete cascade
// =============================================================================

func TestTaskRepository_Delete_CascadesDependents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	profile := testutil.CreateTestProfile(t, db, "user-1")

	task := &domain.Task{Title: "Doomed", Status: "todo", Priority: "medium"}
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, db.Create(&domain.TaskAssignee{TaskID: task.ID, ProfileID: profile.ID, Role: domain.AssigneeRoleOwner}).Error)
	require.NoError(t, db.Create(&domain.Subtask{TaskID: task.ID, Title: "Step"}).Error)
	require.NoError(t, db.Create(&domain.Deliverable{TaskID: task.ID, Title: "Report"}).Error)
	require.NoError(t, db.Create(&domain.Attachment{TaskID: task.ID, FileName: "a.pdf", StoragePath: "files/a.pdf"}).Error)
	require.NoError(t, db.Create(&domain.Comment{EntityType: "task", EntityID: task.ID, AuthorID: "user-1", Body: "hi"}).Error)

	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.EqualValues(t, 0, countRows(t, db, &domain.TaskAssignee{}, "task_id = ?", task.ID))
	assert.EqualValues(t, 0, countRows(t, db, &domain.Subtask{}, "task_id = ?", task.ID))
	assert.EqualValues(t, 0, countRows(t, db, &domain.Deliverable{}, "task_id = ?", task.ID))
	assert.EqualValues(t, 0, countRows(t, db, &domain.Attachment{}, "task_id = ?", task.ID))
	assert.EqualValues(t, 0, countRows(t, db, &domain.Comment{}, "entity_type = ? AND entity_id = ?", "task", task.ID))
}

// =============================================================================
// Profile delete nullifies ownership
// =============================================================================

func TestProfileRepository_Delete_NullifiesLeadOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	profileRepo := repository.NewProfileRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	ctx := context.Background()

	owner := testutil.CreateTestProfile(t, db, "owner-1")

	lead := &domain.Lead{Title: "Owned lead", Status: domain.LeadStatusNew, Currency: "USD", OwnerID: &owner.ID}
	require.NoError(t, leadRepo.Create(ctx, lead))

	require.NoError(t, profileRepo.Delete(ctx, owner.ID))

	// The lead survives with its owner reference cleared
	found, err := leadRepo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Nil(t, found.OwnerID)
}

// =============================================================================
// Range constraints
// =============================================================================

func TestLeadRepository_ProbabilityRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Lead{Title: "Too sure", Status: domain.LeadStatusNew, Currency: "USD", Probability: 150})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	// The boundary itself is fine
	lead := &domain.Lead{Title: "Certain", Status: domain.LeadStatusNew, Currency: "USD", Probability: 100}
	require.NoError(t, repo.Create(ctx, lead))

	found, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, found.Probability)
}

// =============================================================================
// Uniqueness constraints
// =============================================================================

func TestRoleRepository_NameUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRoleRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Role{Name: "Admin"}, nil))

	err := repo.Create(ctx, &domain.Role{Name: "Admin"}, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPipelineRepository_StageOrderUniquePerPipeline(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPipelineRepository(db)
	ctx := context.Background()

	pipeline := &domain.Pipeline{Name: "Sales"}
	require.NoError(t, repo.Create(ctx, pipeline))

	require.NoError(t, repo.AddStage(ctx, &domain.Stage{PipelineID: pipeline.ID, Name: "Prospect", OrderNo: 0}))

	err := repo.AddStage(ctx, &domain.Stage{PipelineID: pipeline.ID, Name: "Duplicate slot", OrderNo: 0})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The same slot is free on another pipeline
	other := &domain.Pipeline{Name: "Renewals"}
	require.NoError(t, repo.Create(ctx, other))
	assert.NoError(t, repo.AddStage(ctx, &domain.Stage{PipelineID: other.ID, Name: "Prospect", OrderNo: 0}))
}

// =============================================================================
// Lead conversion lifecycle
// =============================================================================

func TestLeadRepository_ConversionAndDeleteScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	leadRepo := repository.NewLeadRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	callRepo := repository.NewCallRepository(db)
	ctx := context.Background()

	lead := &domain.Lead{Title: "New factory", Status: domain.LeadStatusQualified, Currency: "USD"}
	require.NoError(t, leadRepo.Create(ctx, lead))

	opp := &domain.Opportunity{LeadID: lead.ID, Amount: 125000}
	require.NoError(t, oppRepo.Create(ctx, opp))

	// A lead converts at most once
	err := oppRepo.Create(ctx, &domain.Opportunity{LeadID: lead.ID, Amount: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)

	call := &domain.Call{
		Subject:  "Kickoff",
		CallType: domain.CallTypeOutbound,
		Status:   domain.CallStatusCompleted,
		LeadID:   &lead.ID,
	}
	require.NoError(t, callRepo.Create(ctx, call))

	require.NoError(t, leadRepo.Delete(ctx, lead.ID))

	_, err = leadRepo.GetByID(ctx, lead.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = oppRepo.GetByID(ctx, opp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The call history survives, detached from the lead
	found, err := callRepo.GetByID(ctx, call.ID)
	require.NoError(t, err)
	assert.Nil(t, found.LeadID)
}

// =============================================================================
// Module record assignments
// =============================================================================

func TestModuleRecordRepository_Assign_ExactlyOneTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	moduleRepo := repository.NewModuleRepository(db)
	recordRepo := repository.NewModuleRecordRepository(db)
	ctx := context.Background()

	module := &domain.Module{Name: "assets"}
	require.NoError(t, moduleRepo.Create(ctx, module))

	record := &domain.ModuleRecord{ModuleID: module.ID, Data: datatypes.JSON(`{"name":"Laptop"}`)}
	require.NoError(t, recordRepo.Create(ctx, record))

	profile := testutil.CreateTestProfile(t, db, "user-1")
	team := &domain.Team{Name: "Ops"}
	require.NoError(t, db.Create(team).Error)

	// Neither side set
	err := recordRepo.Assign(ctx, &domain.ModuleRecordAssignment{RecordID: record.ID})
	assert.ErrorIs(t, err, domain.ErrOrphanAssignment)

	// Both sides set
	err = recordRepo.Assign(ctx, &domain.ModuleRecordAssignment{
		RecordID:  record.ID,
		ProfileID: &profile.ID,
		TeamID:    &team.ID,
	})
	assert.ErrorIs(t, err, domain.ErrOrphanAssignment)

	// Exactly one side is fine
	assert.NoError(t, recordRepo.Assign(ctx, &domain.ModuleRecordAssignment{
		RecordID:  record.ID,
		ProfileID: &profile.ID,
		Role:      domain.AssignmentRoleEditor,
	}))
}
