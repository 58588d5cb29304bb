package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type PipelineRepository struct {
	db *gorm.DB
}

func NewPipelineRepository(db *gorm.DB) *PipelineRepository {
	return &PipelineRepository{db: db}
}

func (r *PipelineRepository) Create(ctx context.Context, pipeline *domain.Pipeline) error {
	return translateError(r.db.WithContext(ctx).Create(pipeline).Error)
}

func (r *PipelineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pipeline, error) {
	var pipeline domain.Pipeline
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stages.order_no")
		}).
		First(&pipeline, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &pipeline, nil
}

func (r *PipelineRepository) List(ctx context.Context) ([]domain.Pipeline, error) {
	var pipelines []domain.Pipeline
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stages.order_no")
		}).
		Order("name").
		Find(&pipelines).Error
	return pipelines, translateError(err)
}

func (r *PipelineRepository) Update(ctx context.Context, pipeline *domain.Pipeline) error {
	return translateError(r.db.WithContext(ctx).Save(pipeline).Error)
}

// Delete soft-deletes a pipeline, removes its stages and detaches surviving
// opportunities
func (r *PipelineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Pipeline{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&domain.Opportunity{}).Where("pipeline_id = ?", id).
			Updates(map[string]interface{}{"pipeline_id": nil, "stage_id": nil}).Error; err != nil {
			return err
		}
		return tx.Where("pipeline_id = ?", id).Delete(&domain.Stage{}).Error
	}))
}

// AddStage appends a stage; the (pipeline, order) pair is unique
func (r *PipelineRepository) AddStage(ctx context.Context, stage *domain.Stage) error {
	return translateError(r.db.WithContext(ctx).Create(stage).Error)
}

func (r *PipelineRepository) RemoveStage(ctx context.Context, pipelineID, stageID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND pipeline_id = ?", stageID, pipelineID).Delete(&domain.Stage{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.Opportunity{}).Where("stage_id = ?", stageID).
			Update("stage_id", nil).Error
	}))
}

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// Create inserts the opportunity. The unique index on lead_id rejects a
// second conversion of the same lead.
func (r *OpportunityRepository) Create(ctx context.Context, opp *domain.Opportunity) error {
	return translateError(r.db.WithContext(ctx).Create(opp).Error)
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var opp domain.Opportunity
	err := r.db.WithContext(ctx).
		Preload("Lead").
		Preload("Pipeline").
		Preload("Stage").
		First(&opp, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &opp, nil
}

func (r *OpportunityRepository) GetByLeadID(ctx context.Context, leadID uuid.UUID) (*domain.Opportunity, error) {
	var opp domain.Opportunity
	err := r.db.WithContext(ctx).First(&opp, "lead_id = ?", leadID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &opp, nil
}

func (r *OpportunityRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Opportunity, int64, error) {
	var opps []domain.Opportunity
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Opportunity{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Preload("Lead").
		Preload("Stage").
		Order("updated_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&opps).Error
	return opps, total, translateError(err)
}

func (r *OpportunityRepository) Update(ctx context.Context, opp *domain.Opportunity) error {
	return translateError(r.db.WithContext(ctx).Save(opp).Error)
}

func (r *OpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Opportunity{}, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
