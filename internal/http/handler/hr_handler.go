package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// EmployeeHandler handles HTTP requests for employee records
type EmployeeHandler struct {
	employeeService *service.EmployeeService
	logger          *zap.Logger
}

func NewEmployeeHandler(employeeService *service.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, logger: logger}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	result, err := h.employeeService.List(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list employees", zap.Error(err))
		respondDomainError(w, err, "employees")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID: must be a valid UUID")
		return
	}

	employee, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "employee")
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) GetByProfile(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	employee, err := h.employeeService.GetByProfileID(r.Context(), profileID)
	if err != nil {
		respondDomainError(w, err, "employee")
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	employee, err := h.employeeService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create employee", zap.Error(err))
		respondDomainError(w, err, "employee")
		return
	}

	w.Header().Set("Location", "/api/v1/employees/"+employee.ID.String())
	respondJSON(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID: must be a valid UUID")
		return
	}

	var req struct {
		JobTitle *string    `json:"jobTitle,omitempty" validate:"omitempty,max=100"`
		HireDate *time.Time `json:"hireDate,omitempty"`
		EndDate  *time.Time `json:"endDate,omitempty"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	employee, err := h.employeeService.Update(r.Context(), id, req.JobTitle, req.HireDate, req.EndDate)
	if err != nil {
		respondDomainError(w, err, "employee")
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID: must be a valid UUID")
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "employee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttendanceHandler handles HTTP requests for attendance punches and sessions
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	logger            *zap.Logger
}

func NewAttendanceHandler(attendanceService *service.AttendanceService, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, logger: logger}
}

// Punch records a clock event against the employee's daily session
func (h *AttendanceHandler) Punch(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID: must be a valid UUID")
		return
	}

	var req domain.PunchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.attendanceService.Punch(r.Context(), employeeID, &req)
	if err != nil {
		respondDomainError(w, err, "attendance record")
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

func (h *AttendanceHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID: must be a valid UUID")
		return
	}
	from, to, err := parseTimeRange(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid time range: from/to must be RFC 3339 timestamps")
		return
	}

	sessions, err := h.attendanceService.Sessions(r.Context(), employeeID, from, to)
	if err != nil {
		respondDomainError(w, err, "attendance sessions")
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

func (h *AttendanceHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid session ID: must be a valid UUID")
		return
	}

	session, err := h.attendanceService.GetSession(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "attendance session")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *AttendanceHandler) SetSessionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid session ID: must be a valid UUID")
		return
	}

	var req struct {
		Status domain.AttendanceStatus `json:"status" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.attendanceService.SetSessionStatus(r.Context(), id, req.Status); err != nil {
		respondDomainError(w, err, "attendance session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LeaveHandler handles HTTP requests for leave requests
type LeaveHandler struct {
	leaveService *service.LeaveService
	logger       *zap.Logger
}

func NewLeaveHandler(leaveService *service.LeaveService, logger *zap.Logger) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService, logger: logger}
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	filter := repository.LeaveFilter{}
	profileID, ok := parseOptionalUUID(r, "profileId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid profileId: must be a valid UUID")
		return
	}
	filter.ProfileID = profileID
	if status := r.URL.Query().Get("status"); status != "" {
		ls := domain.LeaveStatus(status)
		if !ls.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = &ls
	}

	result, err := h.leaveService.List(r.Context(), params, filter)
	if err != nil {
		h.logger.Error("failed to list leave requests", zap.Error(err))
		respondDomainError(w, err, "leave requests")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *LeaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid leave request ID: must be a valid UUID")
		return
	}

	request, err := h.leaveService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "leave request")
		return
	}
	respondJSON(w, http.StatusOK, request)
}

func (h *LeaveHandler) Request(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	var req domain.CreateLeaveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	request, err := h.leaveService.Request(r.Context(), profileID, &req)
	if err != nil {
		respondDomainError(w, err, "leave request")
		return
	}
	respondJSON(w, http.StatusCreated, request)
}

// Decide approves or rejects a pending request
func (h *LeaveHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid leave request ID: must be a valid UUID")
		return
	}

	var req domain.DecideLeaveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.leaveService.Decide(r.Context(), id, &req); err != nil {
		respondDomainError(w, err, "leave request")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeaveHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid leave request ID: must be a valid UUID")
		return
	}
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	if err := h.leaveService.Cancel(r.Context(), id, profileID); err != nil {
		respondDomainError(w, err, "leave request")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
