package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return translateError(r.db.WithContext(ctx).Create(profile).Error)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Preload("Department").First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

// GetByUserID resolves the identity-provider subject to a profile
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context, params domain.ListParams, departmentID *uuid.UUID) ([]domain.Profile, int64, error) {
	var profiles []domain.Profile
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Profile{})
	if departmentID != nil {
		q = q.Where("department_id = ?", *departmentID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("last_name, first_name").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&profiles).Error
	return profiles, total, translateError(err)
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return translateError(r.db.WithContext(ctx).Save(profile).Error)
}

// Delete soft-deletes a profile and untangles everything that hangs off it.
// Membership rows, authored messages and employee data are removed; work
// products the organization keeps (leads, calls, tickets, leave approvals,
// subscriptions) survive with the profile reference nulled.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Profile{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// employee record and its attendance trail
		var employees []domain.Employee
		if err := tx.Where("profile_id = ?", id).Find(&employees).Error; err != nil {
			return err
		}
		for _, emp := range employees {
			var sessions []domain.AttendanceSession
			if err := tx.Where("employee_id = ?", emp.ID).Find(&sessions).Error; err != nil {
				return err
			}
			for _, s := range sessions {
				if err := tx.Where("session_id = ?", s.ID).Delete(&domain.AttendanceRecord{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("employee_id = ?", emp.ID).Delete(&domain.AttendanceSession{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("profile_id = ?", id).Delete(&domain.Employee{}).Error; err != nil {
			return err
		}

		// membership and participation rows
		if err := tx.Where("profile_id = ?", id).Delete(&domain.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignee_id = ?", id).Delete(&domain.TicketAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&domain.ThreadParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&domain.EventParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&domain.DocumentAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&domain.SubscriptionUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&domain.ModuleRecordAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&domain.LeaveRequest{}).Error; err != nil {
			return err
		}

		// organized events go with the organizer
		var events []domain.Event
		if err := tx.Where("organizer_id = ?", id).Find(&events).Error; err != nil {
			return err
		}
		for _, ev := range events {
			if err := tx.Where("event_id = ?", ev.ID).Delete(&domain.EventParticipant{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("organizer_id = ?", id).Delete(&domain.Event{}).Error; err != nil {
			return err
		}

		// surviving references
		if err := tx.Model(&domain.Lead{}).Where("owner_id = ?", id).
			Update("owner_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Call{}).Where("caller_id = ?", id).
			Update("caller_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Ticket{}).Where("resolved_by_id = ?", id).
			Update("resolved_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.LeaveRequest{}).Where("approver_id = ?", id).
			Update("approver_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Subscription{}).Where("owner_id = ?", id).
			Update("owner_id", nil).Error
	}))
}
