package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// LeadService handles the lead lifecycle: creation, status transitions,
// conversion to an opportunity and quotation issuance
type LeadService struct {
	leadRepo      *repository.LeadRepository
	opportunityRepo *repository.OpportunityRepository
	quotationRepo *repository.QuotationRepository
	sequenceRepo  *repository.NumberSequenceRepository
	activity      *ActivityService
	logger        *zap.Logger
}

func NewLeadService(
	leadRepo *repository.LeadRepository,
	opportunityRepo *repository.OpportunityRepository,
	quotationRepo *repository.QuotationRepository,
	sequenceRepo *repository.NumberSequenceRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:        leadRepo,
		opportunityRepo: opportunityRepo,
		quotationRepo:   quotationRepo,
		sequenceRepo:    sequenceRepo,
		activity:        activity,
		logger:          logger,
	}
}

func (s *LeadService) Create(ctx context.Context, req *domain.CreateLeadRequest) (*domain.Lead, error) {
	status := req.Status
	if status == "" {
		status = domain.LeadStatusNew
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: lead status %q", domain.ErrInvalidEnum, status)
	}
	if req.Probability < 0 || req.Probability > 100 {
		return nil, fmt.Errorf("%w: probability %d", domain.ErrOutOfRange, req.Probability)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	lead := &domain.Lead{
		Title:       req.Title,
		Status:      status,
		Probability: req.Probability,
		Value:       req.Value,
		Currency:    currency,
		Source:      req.Source,
		Notes:       req.Notes,
		ContactID:   req.ContactID,
		CompanyID:   req.CompanyID,
		OwnerID:     req.OwnerID,
		VerticalID:  req.VerticalID,
	}
	lead.CreatedBy = actorSubject(ctx)

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.activity.Record(ctx, "created", "lead", &lead.ID, lead.Title)
	return lead, nil
}

func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	return s.leadRepo.GetByID(ctx, id)
}

func (s *LeadService) List(ctx context.Context, params domain.ListParams, filter repository.LeadFilter, sort repository.SortConfig) (*domain.PagedResponse[domain.Lead], error) {
	params.Normalize()
	leads, total, err := s.leadRepo.List(ctx, params, filter, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return domain.NewPagedResponse(leads, params, total), nil
}

func (s *LeadService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateLeadRequest) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: lead status %q", domain.ErrInvalidEnum, *req.Status)
		}
		lead.Status = *req.Status
	}
	if req.Probability != nil {
		if *req.Probability < 0 || *req.Probability > 100 {
			return nil, fmt.Errorf("%w: probability %d", domain.ErrOutOfRange, *req.Probability)
		}
		lead.Probability = *req.Probability
	}
	if req.Title != nil {
		lead.Title = *req.Title
	}
	if req.Value != nil {
		lead.Value = *req.Value
	}
	if req.Currency != nil {
		lead.Currency = *req.Currency
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.ContactID != nil {
		lead.ContactID = req.ContactID
	}
	if req.CompanyID != nil {
		lead.CompanyID = req.CompanyID
	}
	if req.OwnerID != nil {
		lead.OwnerID = req.OwnerID
	}
	if req.VerticalID != nil {
		lead.VerticalID = req.VerticalID
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	s.activity.Record(ctx, "updated", "lead", &lead.ID, lead.Title)
	return lead, nil
}

// ChangeStatus transitions a lead and appends to its status history
func (s *LeadService) ChangeStatus(ctx context.Context, id uuid.UUID, req *domain.ChangeStatusRequest) error {
	status := domain.LeadStatus(req.Status)
	if !status.IsValid() {
		return fmt.Errorf("%w: lead status %q", domain.ErrInvalidEnum, req.Status)
	}

	if err := s.leadRepo.UpdateStatus(ctx, id, status, actorSubject(ctx), req.Note); err != nil {
		return err
	}

	s.activity.Record(ctx, "status_changed", "lead", &id, req.Status)
	return nil
}

// Convert creates the lead's opportunity. A lead converts at most once; a
// second conversion fails with a conflict.
func (s *LeadService) Convert(ctx context.Context, leadID uuid.UUID, req *domain.ConvertLeadRequest) (*domain.Opportunity, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	opp := &domain.Opportunity{
		LeadID:     lead.ID,
		PipelineID: req.PipelineID,
		StageID:    req.StageID,
		Amount:     req.Amount,
	}
	opp.CreatedBy = actorSubject(ctx)

	if err := s.opportunityRepo.Create(ctx, opp); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "converted", "lead", &lead.ID, lead.Title)
	return opp, nil
}

// IssueQuotation creates a quotation against a lead with a generated
// QUO-NNNNNN number
func (s *LeadService) IssueQuotation(ctx context.Context, req *domain.CreateQuotationRequest) (*domain.Quotation, error) {
	lead, err := s.leadRepo.GetByID(ctx, req.LeadID)
	if err != nil {
		return nil, err
	}

	seq, err := s.sequenceRepo.Next(ctx, repository.SequenceQuotations)
	if err != nil {
		return nil, fmt.Errorf("failed to issue quotation number: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = lead.Currency
	}

	quotation := &domain.Quotation{
		QuoteNumber: fmt.Sprintf("QUO-%06d", seq),
		LeadID:      lead.ID,
		Amount:      req.Amount,
		Currency:    currency,
		ValidUntil:  req.ValidUntil,
		Notes:       req.Notes,
	}
	quotation.CreatedBy = actorSubject(ctx)

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "created", "quotation", &quotation.ID, quotation.QuoteNumber)
	return quotation, nil
}

func (s *LeadService) Quotations(ctx context.Context, leadID uuid.UUID) ([]domain.Quotation, error) {
	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		return nil, err
	}
	return s.quotationRepo.ListByLead(ctx, leadID)
}

func (s *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "lead", &id, "")
	return nil
}

func (s *LeadService) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.leadRepo.Restore(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "restored", "lead", &id, "")
	return nil
}

func (s *LeadService) StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistory, error) {
	if _, err := s.leadRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.leadRepo.StatusHistory(ctx, id)
}
