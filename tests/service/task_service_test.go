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
	"gorm.io/gorm"
)

func setupTaskService(t *testing.T) (*service.TaskService, *service.EnumService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	log := testutil.Logger()

	enumRepo := repository.NewEnumRepository(db)
	enumService := service.NewEnumService(enumRepo, log)
	require.NoError(t, enumService.SeedDefaults(context.Background()))

	activity := service.NewActivityService(repository.NewActivityRepository(db), log)
	notifications := service.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewProfileRepository(db),
		log,
	)

	svc := service.NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewCommentRepository(db),
		enumRepo,
		notifications,
		activity,
		log,
	)
	return svc, enumService, db
}

// =============================================================================
// Create and vocabulary validation
// =============================================================================

func TestTaskService_Create_Defaults(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Write onboarding doc"})
	require.NoError(t, err)

	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "medium", task.Priority)
	assert.Equal(t, 0, task.Position)
	assert.Equal(t, "user-1", task.CreatedBy)
}

func TestTaskService_Create_UnknownStatus(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	_, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Task", Status: "parked"})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestTaskService_Create_UnknownPriority(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	_, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Task", Priority: "whenever"})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

func TestTaskService_Create_ExtendedVocabulary(t *testing.T) {
	svc, enums, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	// The status vocabulary is open: a registered value is immediately usable
	_, err := enums.Create(ctx, &domain.CreateEnumOptionRequest{
		EnumType: service.EnumTaskStatus,
		Value:    "blocked",
		Label:    "Blocked",
	})
	require.NoError(t, err)

	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Stuck task", Status: "blocked"})
	require.NoError(t, err)
	assert.Equal(t, "blocked", task.Status)
}

func TestTaskService_Create_AppendsToColumn(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	first, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "First"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Second"})
	require.NoError(t, err)
	third, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Third"})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, 2, third.Position)
}

// =============================================================================
// Board moves
// =============================================================================

func TestTaskService_Move_AcrossColumns(t *testing.T) {
	svc, _, db := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	a, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "B"})
	require.NoError(t, err)
	c, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "C"})
	require.NoError(t, err)

	require.NoError(t, svc.Move(ctx, a.ID, &domain.MoveTaskRequest{Status: "in_progress", Position: 0}))

	moved, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", moved.Status)
	assert.Equal(t, 0, moved.Position)

	// The gap in the old column closes up
	var todo []domain.Task
	require.NoError(t, db.Where("status = ?", "todo").Order("position").Find(&todo).Error)
	require.Len(t, todo, 2)
	assert.Equal(t, b.ID, todo[0].ID)
	assert.Equal(t, 0, todo[0].Position)
	assert.Equal(t, c.ID, todo[1].ID)
	assert.Equal(t, 1, todo[1].Position)
}

func TestTaskService_Move_RecordsStatusHistory(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Tracked"})
	require.NoError(t, err)

	require.NoError(t, svc.Move(ctx, task.ID, &domain.MoveTaskRequest{Status: "done", Position: 0}))

	history, err := svc.StatusHistory(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "done", history[0].ToStatus)
	require.NotNil(t, history[0].FromStatus)
	assert.Equal(t, "todo", *history[0].FromStatus)
}

func TestTaskService_Move_WithinColumnNoHistory(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "One"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateTaskRequest{Title: "Two"})
	require.NoError(t, err)

	require.NoError(t, svc.Move(ctx, task.ID, &domain.MoveTaskRequest{Status: "todo", Position: 1}))

	history, err := svc.StatusHistory(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTaskService_Move_UnknownStatus(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Task"})
	require.NoError(t, err)

	err = svc.Move(ctx, task.ID, &domain.MoveTaskRequest{Status: "limbo", Position: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidEnum)
}

// =============================================================================
// Assignees
// =============================================================================

func TestTaskService_Assign(t *testing.T) {
	svc, _, db := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	profile := testutil.CreateTestProfile(t, db, "assignee-1")
	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Shared task"})
	require.NoError(t, err)

	assignee, err := svc.Assign(ctx, task.ID, &domain.AssignTaskRequest{ProfileID: profile.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.AssigneeRoleCollaborator, assignee.Role)
}

func TestTaskService_Assign_Duplicate(t *testing.T) {
	svc, _, db := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	profile := testutil.CreateTestProfile(t, db, "assignee-1")
	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Shared task"})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, task.ID, &domain.AssignTaskRequest{ProfileID: profile.ID})
	require.NoError(t, err)

	_, err = svc.Assign(ctx, task.ID, &domain.AssignTaskRequest{ProfileID: profile.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// =============================================================================
// Subtasks and comments
// =============================================================================

func TestTaskService_Subtasks(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("user-1")

	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Parent"})
	require.NoError(t, err)

	subtask, err := svc.AddSubtask(ctx, task.ID, &domain.CreateSubtaskRequest{Title: "Step one"})
	require.NoError(t, err)
	assert.False(t, subtask.Done)

	require.NoError(t, svc.SetSubtaskDone(ctx, task.ID, subtask.ID, true))

	loaded, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Subtasks, 1)
	assert.True(t, loaded.Subtasks[0].Done)
}

func TestTaskService_Comments(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := testutil.ActorContext("commenter")

	task, err := svc.Create(ctx, &domain.CreateTaskRequest{Title: "Discussed task"})
	require.NoError(t, err)

	comment, err := svc.Comment(ctx, task.ID, &domain.CreateCommentRequest{Body: "Looks good"})
	require.NoError(t, err)
	assert.Equal(t, "commenter", comment.AuthorID)

	comments, err := svc.Comments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Looks good", comments[0].Body)
}
