package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// EmployeeService manages HR employee records
type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	profileRepo  *repository.ProfileRepository
	activity     *ActivityService
	logger       *zap.Logger
}

func NewEmployeeService(
	employeeRepo *repository.EmployeeRepository,
	profileRepo *repository.ProfileRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		profileRepo:  profileRepo,
		activity:     activity,
		logger:       logger,
	}
}

// Create registers a profile as an employee. Both the badge number and the
// profile binding are unique.
func (s *EmployeeService) Create(ctx context.Context, req *domain.CreateEmployeeRequest) (*domain.Employee, error) {
	if _, err := s.profileRepo.GetByID(ctx, req.ProfileID); err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		EmployeeID: req.EmployeeID,
		ProfileID:  req.ProfileID,
		JobTitle:   req.JobTitle,
		HireDate:   req.HireDate,
	}
	employee.CreatedBy = actorSubject(ctx)

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "created", "employee", &employee.ID, employee.EmployeeID)
	return employee, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *EmployeeService) GetByProfileID(ctx context.Context, profileID uuid.UUID) (*domain.Employee, error) {
	return s.employeeRepo.GetByProfileID(ctx, profileID)
}

func (s *EmployeeService) List(ctx context.Context, params domain.ListParams) (*domain.PagedResponse[domain.Employee], error) {
	params.Normalize()
	employees, total, err := s.employeeRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return domain.NewPagedResponse(employees, params, total), nil
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, jobTitle *string, hireDate, endDate *time.Time) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if jobTitle != nil {
		employee.JobTitle = *jobTitle
	}
	if hireDate != nil {
		employee.HireDate = hireDate
	}
	if endDate != nil {
		employee.EndDate = endDate
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "employee", &id, "")
	return nil
}

// AttendanceService records daily attendance. A punch lands in the
// employee's session for the punch day, creating it on first use.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	employeeRepo   *repository.EmployeeRepository
	logger         *zap.Logger
}

func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	employeeRepo *repository.EmployeeRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		logger:         logger,
	}
}

// Punch records an attendance event. A check-in or manual entry flips a
// pending session to present.
func (s *AttendanceService) Punch(ctx context.Context, employeeID uuid.UUID, req *domain.PunchRequest) (*domain.AttendanceRecord, error) {
	if !req.RecordType.IsValid() {
		return nil, fmt.Errorf("%w: record type %q", domain.ErrInvalidEnum, req.RecordType)
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	session, err := s.attendanceRepo.GetOrCreateSession(ctx, employeeID, occurredAt)
	if err != nil {
		return nil, fmt.Errorf("failed to open attendance session: %w", err)
	}

	record := &domain.AttendanceRecord{
		SessionID:  session.ID,
		RecordType: req.RecordType,
		OccurredAt: occurredAt,
		Note:       req.Note,
	}
	if err := s.attendanceRepo.AddRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record punch: %w", err)
	}
	return record, nil
}

func (s *AttendanceService) GetSession(ctx context.Context, id uuid.UUID) (*domain.AttendanceSession, error) {
	return s.attendanceRepo.GetSession(ctx, id)
}

// Sessions returns an employee's sessions in the date window
func (s *AttendanceService) Sessions(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]domain.AttendanceSession, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListSessions(ctx, employeeID, from, to)
}

// SetSessionStatus overrides a session's status, for holidays and manual
// corrections
func (s *AttendanceService) SetSessionStatus(ctx context.Context, id uuid.UUID, status domain.AttendanceStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: attendance status %q", domain.ErrInvalidEnum, status)
	}
	return s.attendanceRepo.UpdateSessionStatus(ctx, id, status)
}

// SweepPending marks sessions older than the cutoff that never saw a punch as
// absent. Run nightly by the scheduler.
func (s *AttendanceService) SweepPending(ctx context.Context, cutoff time.Time) (int64, error) {
	swept, err := s.attendanceRepo.SweepPending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep pending sessions: %w", err)
	}
	if swept > 0 {
		s.logger.Info("swept pending attendance sessions",
			zap.Int64("count", swept),
			zap.Time("cutoff", cutoff),
		)
	}
	return swept, nil
}
