package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task at the bottom of its status column
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos *int
		if err := tx.Model(&domain.Task{}).
			Where("status = ?", task.Status).
			Select("MAX(position)").
			Scan(&maxPos).Error; err != nil {
			return err
		}
		if maxPos != nil {
			task.Position = *maxPos + 1
		} else {
			task.Position = 0
		}
		return tx.Create(task).Error
	}))
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees.Profile").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.created_at")
		}).
		Preload("Deliverables").
		Preload("Attachments").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &task, nil
}

// TaskFilter narrows task listings
type TaskFilter struct {
	Status       *string
	Priority     *string
	DepartmentID *uuid.UUID
	VerticalID   *uuid.UUID
	AssigneeID   *uuid.UUID
}

func (r *TaskRepository) List(ctx context.Context, params domain.ListParams, filter TaskFilter) ([]domain.Task, int64, error) {
	var tasks []domain.Task
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Task{})
	if filter.Status != nil {
		q = q.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.DepartmentID != nil {
		q = q.Where("tasks.department_id = ?", *filter.DepartmentID)
	}
	if filter.VerticalID != nil {
		q = q.Where("tasks.vertical_id = ?", *filter.VerticalID)
	}
	if filter.AssigneeID != nil {
		q = q.Joins("JOIN task_assignees ta ON ta.task_id = tasks.id").
			Where("ta.profile_id = ?", *filter.AssigneeID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("LOWER(tasks.title) LIKE LOWER(?)", pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("tasks.status, tasks.position").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&tasks).Error
	return tasks, total, translateError(err)
}

// Board returns every task grouped by status in board order
func (r *TaskRepository) Board(ctx context.Context) (map[string][]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees.Profile").
		Order("status, position").
		Find(&tasks).Error
	if err != nil {
		return nil, translateError(err)
	}

	board := make(map[string][]domain.Task)
	for _, t := range tasks {
		board[t.Status] = append(board[t.Status], t)
	}
	return board, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return translateError(r.db.WithContext(ctx).Save(task).Error)
}

// Move repositions a task on the board. The task leaves its current column
// slot, the old column closes the gap, and peers at or below the target slot
// shift down. A status change appends a history row.
func (r *TaskRepository) Move(ctx context.Context, id uuid.UUID, status string, position int, changedBy string) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task domain.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&domain.Task{}).Where("status = ? AND id <> ?", status, id).
			Count(&count).Error; err != nil {
			return err
		}
		if position > int(count) {
			position = int(count)
		}

		// close the gap in the old column
		if err := tx.Model(&domain.Task{}).
			Where("status = ? AND position > ?", task.Status, task.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		// make room in the target column
		if err := tx.Model(&domain.Task{}).
			Where("status = ? AND position >= ? AND id <> ?", status, position, id).
			UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
			return err
		}

		from := task.Status
		statusChanged := from != status
		if err := tx.Model(&task).Updates(map[string]interface{}{
			"status":   status,
			"position": position,
		}).Error; err != nil {
			return err
		}

		if statusChanged {
			return tx.Create(&domain.StatusHistory{
				EntityType: "task",
				EntityID:   id,
				FromStatus: &from,
				ToStatus:   status,
				ChangedBy:  changedBy,
			}).Error
		}
		return nil
	}))
}

// Delete soft-deletes a task, removes its dependents and closes the board gap
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task domain.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&task).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Task{}).
			Where("status = ? AND position > ?", task.Status, task.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&domain.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&domain.Subtask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&domain.Deliverable{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&domain.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entity_type = ? AND entity_id = ?", "task", id).
			Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("entity_type = ? AND entity_id = ?", "task", id).
			Delete(&domain.StatusHistory{}).Error
	}))
}

func (r *TaskRepository) AddAssignee(ctx context.Context, assignee *domain.TaskAssignee) error {
	return translateError(r.db.WithContext(ctx).Create(assignee).Error)
}

func (r *TaskRepository) RemoveAssignee(ctx context.Context, taskID, profileID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("task_id = ? AND profile_id = ?", taskID, profileID).
		Delete(&domain.TaskAssignee{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) AddSubtask(ctx context.Context, subtask *domain.Subtask) error {
	return translateError(r.db.WithContext(ctx).Create(subtask).Error)
}

func (r *TaskRepository) SetSubtaskDone(ctx context.Context, taskID, subtaskID uuid.UUID, done bool) error {
	res := r.db.WithContext(ctx).Model(&domain.Subtask{}).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		Update("done", done)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) RemoveSubtask(ctx context.Context, taskID, subtaskID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		Delete(&domain.Subtask{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) AddDeliverable(ctx context.Context, deliverable *domain.Deliverable) error {
	return translateError(r.db.WithContext(ctx).Create(deliverable).Error)
}

func (r *TaskRepository) AddAttachment(ctx context.Context, attachment *domain.Attachment) error {
	return translateError(r.db.WithContext(ctx).Create(attachment).Error)
}

func (r *TaskRepository) RemoveAttachment(ctx context.Context, taskID, attachmentID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND task_id = ?", attachmentID, taskID).
		Delete(&domain.Attachment{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// StatusHistory returns the transitions of a task, oldest first
func (r *TaskRepository) StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistory, error) {
	var history []domain.StatusHistory
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", "task", id).
		Order("created_at").
		Find(&history).Error
	return history, translateError(err)
}
