package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// TaskHandler handles HTTP requests for the kanban board
type TaskHandler struct {
	taskService *service.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(taskService *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	filter := repository.TaskFilter{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		filter.Priority = &priority
	}
	departmentID, ok := parseOptionalUUID(r, "departmentId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid departmentId: must be a valid UUID")
		return
	}
	filter.DepartmentID = departmentID
	verticalID, ok := parseOptionalUUID(r, "verticalId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid verticalId: must be a valid UUID")
		return
	}
	filter.VerticalID = verticalID
	assigneeID, ok := parseOptionalUUID(r, "assigneeId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid assigneeId: must be a valid UUID")
		return
	}
	filter.AssigneeID = assigneeID

	result, err := h.taskService.List(r.Context(), params, filter)
	if err != nil {
		h.logger.Error("failed to list tasks", zap.Error(err))
		respondDomainError(w, err, "tasks")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Board returns live tasks grouped by status column
func (h *TaskHandler) Board(w http.ResponseWriter, r *http.Request) {
	board, err := h.taskService.Board(r.Context())
	if err != nil {
		h.logger.Error("failed to load board", zap.Error(err))
		respondDomainError(w, err, "board")
		return
	}
	respondJSON(w, http.StatusOK, board)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create task", zap.Error(err))
		respondDomainError(w, err, "task")
		return
	}

	w.Header().Set("Location", "/api/v1/tasks/"+task.ID.String())
	respondJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	var req domain.UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	var req domain.MoveTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.taskService.Move(r.Context(), id, &req); err != nil {
		respondDomainError(w, err, "task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	var req domain.AssignTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignee, err := h.taskService.Assign(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "task assignee")
		return
	}
	respondJSON(w, http.StatusCreated, assignee)
}

func (h *TaskHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	if err := h.taskService.Unassign(r.Context(), taskID, profileID); err != nil {
		respondDomainError(w, err, "task assignee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) AddSubtask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	var req domain.CreateSubtaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subtask, err := h.taskService.AddSubtask(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "subtask")
		return
	}
	respondJSON(w, http.StatusCreated, subtask)
}

func (h *TaskHandler) SetSubtaskDone(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}
	subtaskID, err := uuid.Parse(chi.URLParam(r, "subtaskId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subtask ID: must be a valid UUID")
		return
	}
	done, err := strconv.ParseBool(r.URL.Query().Get("done"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid done flag: must be true or false")
		return
	}

	if err := h.taskService.SetSubtaskDone(r.Context(), taskID, subtaskID, done); err != nil {
		respondDomainError(w, err, "subtask")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) RemoveSubtask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}
	subtaskID, err := uuid.Parse(chi.URLParam(r, "subtaskId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subtask ID: must be a valid UUID")
		return
	}

	if err := h.taskService.RemoveSubtask(r.Context(), taskID, subtaskID); err != nil {
		respondDomainError(w, err, "subtask")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) AddDeliverable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	var req domain.CreateDeliverableRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deliverable, err := h.taskService.AddDeliverable(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "deliverable")
		return
	}
	respondJSON(w, http.StatusCreated, deliverable)
}

func (h *TaskHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	var req struct {
		FileName    string `json:"fileName" validate:"required,max=255"`
		ContentType string `json:"contentType" validate:"required,max=100"`
		StoragePath string `json:"storagePath" validate:"required"`
		Size        int64  `json:"size" validate:"min=0"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	attachment, err := h.taskService.AddAttachment(r.Context(), id, req.FileName, req.ContentType, req.StoragePath, req.Size)
	if err != nil {
		respondDomainError(w, err, "attachment")
		return
	}
	respondJSON(w, http.StatusCreated, attachment)
}

func (h *TaskHandler) RemoveAttachment(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}
	attachmentID, err := uuid.Parse(chi.URLParam(r, "attachmentId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid attachment ID: must be a valid UUID")
		return
	}

	if err := h.taskService.RemoveAttachment(r.Context(), taskID, attachmentID); err != nil {
		respondDomainError(w, err, "attachment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	var req domain.CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.taskService.Comment(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "comment")
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

func (h *TaskHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	comments, err := h.taskService.Comments(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "comments")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *TaskHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid comment ID: must be a valid UUID")
		return
	}

	if err := h.taskService.DeleteComment(r.Context(), commentID); err != nil {
		respondDomainError(w, err, "comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID: must be a valid UUID")
		return
	}

	history, err := h.taskService.StatusHistory(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "task")
		return
	}
	respondJSON(w, http.StatusOK, history)
}
