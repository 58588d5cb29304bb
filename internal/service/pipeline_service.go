package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// PipelineService manages sales pipelines and their stage layouts
type PipelineService struct {
	pipelineRepo    *repository.PipelineRepository
	opportunityRepo *repository.OpportunityRepository
	activity        *ActivityService
	logger          *zap.Logger
}

func NewPipelineService(
	pipelineRepo *repository.PipelineRepository,
	opportunityRepo *repository.OpportunityRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *PipelineService {
	return &PipelineService{
		pipelineRepo:    pipelineRepo,
		opportunityRepo: opportunityRepo,
		activity:        activity,
		logger:          logger,
	}
}

func (s *PipelineService) Create(ctx context.Context, req *domain.CreatePipelineRequest) (*domain.Pipeline, error) {
	pipeline := &domain.Pipeline{
		Name:      req.Name,
		IsDefault: req.IsDefault,
	}
	for _, st := range req.Stages {
		if st.WinChance < 0 || st.WinChance > 100 {
			return nil, fmt.Errorf("%w: win chance %d", domain.ErrOutOfRange, st.WinChance)
		}
		pipeline.Stages = append(pipeline.Stages, domain.Stage{
			Name:      st.Name,
			OrderNo:   st.OrderNo,
			WinChance: st.WinChance,
		})
	}
	pipeline.CreatedBy = actorSubject(ctx)

	if err := s.pipelineRepo.Create(ctx, pipeline); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "created", "pipeline", &pipeline.ID, pipeline.Name)
	return pipeline, nil
}

func (s *PipelineService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pipeline, error) {
	return s.pipelineRepo.GetByID(ctx, id)
}

func (s *PipelineService) List(ctx context.Context) ([]domain.Pipeline, error) {
	return s.pipelineRepo.List(ctx)
}

func (s *PipelineService) Update(ctx context.Context, id uuid.UUID, name *string, isDefault *bool) (*domain.Pipeline, error) {
	pipeline, err := s.pipelineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		pipeline.Name = *name
	}
	if isDefault != nil {
		pipeline.IsDefault = *isDefault
	}
	if err := s.pipelineRepo.Update(ctx, pipeline); err != nil {
		return nil, fmt.Errorf("failed to update pipeline: %w", err)
	}
	s.activity.Record(ctx, "updated", "pipeline", &pipeline.ID, pipeline.Name)
	return pipeline, nil
}

func (s *PipelineService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.pipelineRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "pipeline", &id, "")
	return nil
}

// AddStage appends a stage. The stage order must be unique within the
// pipeline; a duplicate order fails with a conflict.
func (s *PipelineService) AddStage(ctx context.Context, pipelineID uuid.UUID, req *domain.CreateStageRequest) (*domain.Stage, error) {
	if _, err := s.pipelineRepo.GetByID(ctx, pipelineID); err != nil {
		return nil, err
	}
	if req.WinChance < 0 || req.WinChance > 100 {
		return nil, fmt.Errorf("%w: win chance %d", domain.ErrOutOfRange, req.WinChance)
	}

	stage := &domain.Stage{
		PipelineID: pipelineID,
		Name:       req.Name,
		OrderNo:    req.OrderNo,
		WinChance:  req.WinChance,
	}
	if err := s.pipelineRepo.AddStage(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

func (s *PipelineService) RemoveStage(ctx context.Context, pipelineID, stageID uuid.UUID) error {
	return s.pipelineRepo.RemoveStage(ctx, pipelineID, stageID)
}

// Opportunities

func (s *PipelineService) GetOpportunity(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	return s.opportunityRepo.GetByID(ctx, id)
}

func (s *PipelineService) ListOpportunities(ctx context.Context, params domain.ListParams) (*domain.PagedResponse[domain.Opportunity], error) {
	params.Normalize()
	opps, total, err := s.opportunityRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	return domain.NewPagedResponse(opps, params, total), nil
}

// MoveOpportunity places an opportunity on a stage of its pipeline
func (s *PipelineService) MoveOpportunity(ctx context.Context, id uuid.UUID, pipelineID, stageID *uuid.UUID, amount *float64) (*domain.Opportunity, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pipelineID != nil {
		opp.PipelineID = pipelineID
	}
	if stageID != nil {
		opp.StageID = stageID
	}
	if amount != nil {
		opp.Amount = *amount
	}
	if err := s.opportunityRepo.Update(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}
	s.activity.Record(ctx, "moved", "opportunity", &opp.ID, "")
	return opp, nil
}

func (s *PipelineService) DeleteOpportunity(ctx context.Context, id uuid.UUID) error {
	if err := s.opportunityRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "opportunity", &id, "")
	return nil
}
