package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// Enum registry types consulted for task fields
const (
	EnumTaskStatus   = "task_status"
	EnumTaskPriority = "task_priority"
)

// TaskService manages the kanban board. Task status and priority are open
// vocabularies checked against the enum registry on every write.
type TaskService struct {
	taskRepo      *repository.TaskRepository
	commentRepo   *repository.CommentRepository
	enumRepo      *repository.EnumRepository
	notifications *NotificationService
	activity      *ActivityService
	logger        *zap.Logger
}

func NewTaskService(
	taskRepo *repository.TaskRepository,
	commentRepo *repository.CommentRepository,
	enumRepo *repository.EnumRepository,
	notifications *NotificationService,
	activity *ActivityService,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		commentRepo:   commentRepo,
		enumRepo:      enumRepo,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

func (s *TaskService) checkVocabulary(ctx context.Context, enumType, value string) error {
	ok, err := s.enumRepo.IsValid(ctx, enumType, value)
	if err != nil {
		return fmt.Errorf("failed to check %s vocabulary: %w", enumType, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s %q", domain.ErrInvalidEnum, enumType, value)
	}
	return nil
}

// Create adds a task at the bottom of its status column
func (s *TaskService) Create(ctx context.Context, req *domain.CreateTaskRequest) (*domain.Task, error) {
	status := req.Status
	if status == "" {
		status = "todo"
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	if err := s.checkVocabulary(ctx, EnumTaskStatus, status); err != nil {
		return nil, err
	}
	if err := s.checkVocabulary(ctx, EnumTaskPriority, priority); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		DueDate:      req.DueDate,
		DepartmentID: req.DepartmentID,
		VerticalID:   req.VerticalID,
	}
	task.CreatedBy = actorSubject(ctx)

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	for _, profileID := range req.AssigneeIDs {
		assignee := &domain.TaskAssignee{
			TaskID:    task.ID,
			ProfileID: profileID,
			Role:      domain.AssigneeRoleCollaborator,
		}
		if err := s.taskRepo.AddAssignee(ctx, assignee); err != nil {
			return nil, fmt.Errorf("failed to assign task: %w", err)
		}
	}

	s.activity.Record(ctx, "created", "task", &task.ID, task.Title)
	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

func (s *TaskService) List(ctx context.Context, params domain.ListParams, filter repository.TaskFilter) (*domain.PagedResponse[domain.Task], error) {
	params.Normalize()
	tasks, total, err := s.taskRepo.List(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return domain.NewPagedResponse(tasks, params, total), nil
}

// Board returns the live tasks grouped by status column, ordered by position
func (s *TaskService) Board(ctx context.Context) (map[string][]domain.Task, error) {
	return s.taskRepo.Board(ctx)
}

func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Priority != nil {
		if err := s.checkVocabulary(ctx, EnumTaskPriority, *req.Priority); err != nil {
			return nil, err
		}
		task.Priority = *req.Priority
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.DepartmentID != nil {
		task.DepartmentID = req.DepartmentID
	}
	if req.VerticalID != nil {
		task.VerticalID = req.VerticalID
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.activity.Record(ctx, "updated", "task", &task.ID, task.Title)
	return task, nil
}

// Move repositions a task on the board. Positions in both affected columns
// stay contiguous; a status change is appended to the task's history.
func (s *TaskService) Move(ctx context.Context, id uuid.UUID, req *domain.MoveTaskRequest) error {
	if err := s.checkVocabulary(ctx, EnumTaskStatus, req.Status); err != nil {
		return err
	}
	if req.Position < 0 {
		return fmt.Errorf("%w: position %d", domain.ErrOutOfRange, req.Position)
	}

	if err := s.taskRepo.Move(ctx, id, req.Status, req.Position, actorSubject(ctx)); err != nil {
		return err
	}

	s.activity.Record(ctx, "moved", "task", &id, req.Status)
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "task", &id, "")
	return nil
}

// Assign adds a profile to a task; the pair is unique
func (s *TaskService) Assign(ctx context.Context, taskID uuid.UUID, req *domain.AssignTaskRequest) (*domain.TaskAssignee, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.AssigneeRoleCollaborator
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: assignee role %q", domain.ErrInvalidEnum, role)
	}

	assignee := &domain.TaskAssignee{
		TaskID:    taskID,
		ProfileID: req.ProfileID,
		Role:      role,
	}
	if err := s.taskRepo.AddAssignee(ctx, assignee); err != nil {
		return nil, err
	}

	s.notifications.NotifyProfile(ctx, req.ProfileID, "task_assigned", "Task assigned",
		fmt.Sprintf("You were assigned to %q", task.Title), "task", &taskID)
	return assignee, nil
}

func (s *TaskService) Unassign(ctx context.Context, taskID, profileID uuid.UUID) error {
	return s.taskRepo.RemoveAssignee(ctx, taskID, profileID)
}

func (s *TaskService) AddSubtask(ctx context.Context, taskID uuid.UUID, req *domain.CreateSubtaskRequest) (*domain.Subtask, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	subtask := &domain.Subtask{
		TaskID: taskID,
		Title:  req.Title,
	}
	if err := s.taskRepo.AddSubtask(ctx, subtask); err != nil {
		return nil, fmt.Errorf("failed to add subtask: %w", err)
	}
	return subtask, nil
}

func (s *TaskService) SetSubtaskDone(ctx context.Context, taskID, subtaskID uuid.UUID, done bool) error {
	return s.taskRepo.SetSubtaskDone(ctx, taskID, subtaskID, done)
}

func (s *TaskService) RemoveSubtask(ctx context.Context, taskID, subtaskID uuid.UUID) error {
	return s.taskRepo.RemoveSubtask(ctx, taskID, subtaskID)
}

func (s *TaskService) AddDeliverable(ctx context.Context, taskID uuid.UUID, req *domain.CreateDeliverableRequest) (*domain.Deliverable, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	deliverable := &domain.Deliverable{
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if err := s.taskRepo.AddDeliverable(ctx, deliverable); err != nil {
		return nil, fmt.Errorf("failed to add deliverable: %w", err)
	}
	return deliverable, nil
}

func (s *TaskService) AddAttachment(ctx context.Context, taskID uuid.UUID, fileName, contentType, storagePath string, size int64) (*domain.Attachment, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	attachment := &domain.Attachment{
		TaskID:      taskID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		StoragePath: storagePath,
		UploadedBy:  actorSubject(ctx),
	}
	if err := s.taskRepo.AddAttachment(ctx, attachment); err != nil {
		return nil, fmt.Errorf("failed to add attachment: %w", err)
	}
	return attachment, nil
}

func (s *TaskService) RemoveAttachment(ctx context.Context, taskID, attachmentID uuid.UUID) error {
	return s.taskRepo.RemoveAttachment(ctx, taskID, attachmentID)
}

// Comment adds a discussion entry attributed to the acting identity
func (s *TaskService) Comment(ctx context.Context, taskID uuid.UUID, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{
		EntityType: "task",
		EntityID:   taskID,
		AuthorID:   actorSubject(ctx),
		Body:       req.Body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment, nil
}

func (s *TaskService) Comments(ctx context.Context, taskID uuid.UUID) ([]domain.Comment, error) {
	return s.commentRepo.ListByEntity(ctx, "task", taskID)
}

// DeleteComment removes a comment; only the author may delete it
func (s *TaskService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return s.commentRepo.Delete(ctx, commentID, actorSubject(ctx))
}

func (s *TaskService) StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistory, error) {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.taskRepo.StatusHistory(ctx, id)
}
