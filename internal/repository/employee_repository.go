package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts an employee. The badge number and the profile binding are
// both unique.
func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	return translateError(r.db.WithContext(ctx).Create(employee).Error)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).Preload("Profile").First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).First(&employee, "profile_id = ?", profileID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Employee, int64, error) {
	var employees []domain.Employee
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Employee{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("employee_id LIKE ? OR LOWER(job_title) LIKE LOWER(?)", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Preload("Profile").
		Order("employee_id").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&employees).Error
	return employees, total, translateError(err)
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	return translateError(r.db.WithContext(ctx).Save(employee).Error)
}

// Delete soft-deletes an employee and removes its attendance trail
func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Employee{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		var sessions []domain.AttendanceSession
		if err := tx.Where("employee_id = ?", id).Find(&sessions).Error; err != nil {
			return err
		}
		for _, s := range sessions {
			if err := tx.Where("session_id = ?", s.ID).Delete(&domain.AttendanceRecord{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("employee_id = ?", id).Delete(&domain.AttendanceSession{}).Error
	}))
}

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetOrCreateSession returns the employee's session for the day, creating a
// pending one when none exists. The (employee, date) pair is unique.
func (r *AttendanceRepository) GetOrCreateSession(ctx context.Context, employeeID uuid.UUID, day time.Time) (*domain.AttendanceSession, error) {
	day = day.Truncate(24 * time.Hour)
	var session domain.AttendanceSession

	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, day).
		First(&session).Error
	if err == nil {
		return &session, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, translateError(err)
	}

	session = domain.AttendanceSession{
		EmployeeID: employeeID,
		Date:       day,
		Status:     domain.AttendancePending,
	}
	if err := r.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

func (r *AttendanceRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.AttendanceSession, error) {
	var session domain.AttendanceSession
	err := r.db.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB {
			return db.Order("attendance_records.occurred_at")
		}).
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

func (r *AttendanceRepository) ListSessions(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]domain.AttendanceSession, error) {
	var sessions []domain.AttendanceSession
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date >= ? AND date < ?", employeeID, from, to).
		Order("date").
		Find(&sessions).Error
	return sessions, translateError(err)
}

// AddRecord appends a punch and recomputes the session status
func (r *AttendanceRepository) AddRecord(ctx context.Context, record *domain.AttendanceRecord) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session domain.AttendanceSession
		if err := tx.First(&session, "id = ?", record.SessionID).Error; err != nil {
			return err
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if session.Status == domain.AttendancePending &&
			(record.RecordType == domain.RecordCheckIn || record.RecordType == domain.RecordManualEntry) {
			return tx.Model(&session).Update("status", domain.AttendancePresent).Error
		}
		return nil
	}))
}

// UpdateSessionStatus sets the day's status directly (leave, holiday, manual
// corrections)
func (r *AttendanceRepository) UpdateSessionStatus(ctx context.Context, id uuid.UUID, status domain.AttendanceStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.AttendanceSession{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SweepPending marks sessions older than the cutoff that never saw a punch as
// absent. Returns the number of sessions closed.
func (r *AttendanceRepository) SweepPending(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.AttendanceSession{}).
		Where("status = ? AND date < ?", domain.AttendancePending, cutoff.Truncate(24*time.Hour)).
		Update("status", domain.AttendanceAbsent)
	return res.RowsAffected, translateError(res.Error)
}
