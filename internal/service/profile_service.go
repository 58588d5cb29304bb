package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// ProfileService manages organization member profiles
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	activity    *ActivityService
	logger      *zap.Logger
}

func NewProfileService(profileRepo *repository.ProfileRepository, activity *ActivityService, logger *zap.Logger) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, activity: activity, logger: logger}
}

func (s *ProfileService) Create(ctx context.Context, req *domain.CreateProfileRequest) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID:       req.UserID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
	}
	profile.CreatedBy = actorSubject(ctx)

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "created", "profile", &profile.ID, profile.FullName())
	return profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

// Me returns the acting identity's profile
func (s *ProfileService) Me(ctx context.Context) (*domain.Profile, error) {
	actor := actorSubject(ctx)
	if actor == "system" {
		return nil, ErrUnauthorized
	}
	return s.profileRepo.GetByUserID(ctx, actor)
}

func (s *ProfileService) List(ctx context.Context, params domain.ListParams, departmentID *uuid.UUID) (*domain.PagedResponse[domain.Profile], error) {
	params.Normalize()
	profiles, total, err := s.profileRepo.List(ctx, params, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return domain.NewPagedResponse(profiles, params, total), nil
}

func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.DepartmentID != nil {
		profile.DepartmentID = req.DepartmentID
	}
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.activity.Record(ctx, "updated", "profile", &profile.ID, profile.FullName())
	return profile, nil
}

func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "profile", &id, "")
	return nil
}

// OrgService manages departments and teams
type OrgService struct {
	departmentRepo *repository.DepartmentRepository
	teamRepo       *repository.TeamRepository
	activity       *ActivityService
	logger         *zap.Logger
}

func NewOrgService(
	departmentRepo *repository.DepartmentRepository,
	teamRepo *repository.TeamRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *OrgService {
	return &OrgService{
		departmentRepo: departmentRepo,
		teamRepo:       teamRepo,
		activity:       activity,
		logger:         logger,
	}
}

func (s *OrgService) CreateDepartment(ctx context.Context, name, description string) (*domain.Department, error) {
	department := &domain.Department{
		Name:        name,
		Description: description,
	}
	department.CreatedBy = actorSubject(ctx)

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.activity.Record(ctx, "created", "department", &department.ID, department.Name)
	return department, nil
}

func (s *OrgService) GetDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

func (s *OrgService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.departmentRepo.List(ctx)
}

func (s *OrgService) UpdateDepartment(ctx context.Context, id uuid.UUID, name, description string) (*domain.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	department.Name = name
	department.Description = description
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return department, nil
}

func (s *OrgService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "department", &id, "")
	return nil
}

func (s *OrgService) CreateTeam(ctx context.Context, name, description string, departmentID *uuid.UUID) (*domain.Team, error) {
	team := &domain.Team{
		Name:         name,
		Description:  description,
		DepartmentID: departmentID,
	}
	team.CreatedBy = actorSubject(ctx)

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.activity.Record(ctx, "created", "team", &team.ID, team.Name)
	return team, nil
}

func (s *OrgService) GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	return s.teamRepo.GetByID(ctx, id)
}

func (s *OrgService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return s.teamRepo.List(ctx)
}

func (s *OrgService) UpdateTeam(ctx context.Context, id uuid.UUID, name, description string, departmentID *uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Name = name
	team.Description = description
	team.DepartmentID = departmentID
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

func (s *OrgService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "team", &id, "")
	return nil
}
