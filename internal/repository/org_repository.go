package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, department *domain.Department) error {
	return translateError(r.db.WithContext(ctx).Create(department).Error)
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	var department domain.Department
	err := r.db.WithContext(ctx).First(&department, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &department, nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).Order("name").Find(&departments).Error
	return departments, translateError(err)
}

func (r *DepartmentRepository) Update(ctx context.Context, department *domain.Department) error {
	return translateError(r.db.WithContext(ctx).Save(department).Error)
}

// Delete soft-deletes a department; profiles, teams and tasks keep existing
// unattached
func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Department{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&domain.Profile{}).Where("department_id = ?", id).
			Update("department_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Team{}).Where("department_id = ?", id).
			Update("department_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Task{}).Where("department_id = ?", id).
			Update("department_id", nil).Error
	}))
}

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	return translateError(r.db.WithContext(ctx).Create(team).Error)
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).Preload("Department").First(&team, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &team, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.db.WithContext(ctx).Order("name").Find(&teams).Error
	return teams, translateError(err)
}

func (r *TeamRepository) Update(ctx context.Context, team *domain.Team) error {
	return translateError(r.db.WithContext(ctx).Save(team).Error)
}

// Delete soft-deletes a team, removes its record grants and detaches
// subscriptions
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Team{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("team_id = ?", id).Delete(&domain.ModuleRecordAssignment{}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Subscription{}).Where("team_id = ?", id).
			Update("team_id", nil).Error
	}))
}
