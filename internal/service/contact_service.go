package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// ContactService handles CRM contact operations
type ContactService struct {
	contactRepo *repository.ContactRepository
	activity    *ActivityService
	logger      *zap.Logger
}

func NewContactService(contactRepo *repository.ContactRepository, activity *ActivityService, logger *zap.Logger) *ContactService {
	return &ContactService{contactRepo: contactRepo, activity: activity, logger: logger}
}

func (s *ContactService) Create(ctx context.Context, req *domain.CreateContactRequest) (*domain.Contact, error) {
	contact := &domain.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Title:     req.Title,
		Notes:     req.Notes,
	}
	contact.CreatedBy = actorSubject(ctx)

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.activity.Record(ctx, "created", "contact", &contact.ID, contact.FullName())
	return contact, nil
}

func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	return s.contactRepo.GetByID(ctx, id)
}

func (s *ContactService) List(ctx context.Context, params domain.ListParams) (*domain.PagedResponse[domain.Contact], error) {
	params.Normalize()
	contacts, total, err := s.contactRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return domain.NewPagedResponse(contacts, params, total), nil
}

func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateContactRequest) (*domain.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Title != nil {
		contact.Title = *req.Title
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	s.activity.Record(ctx, "updated", "contact", &contact.ID, contact.FullName())
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "contact", &id, "")
	return nil
}

// CompanyService handles CRM company operations
type CompanyService struct {
	companyRepo *repository.CompanyRepository
	contactRepo *repository.ContactRepository
	activity    *ActivityService
	logger      *zap.Logger
}

func NewCompanyService(
	companyRepo *repository.CompanyRepository,
	contactRepo *repository.ContactRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		contactRepo: contactRepo,
		activity:    activity,
		logger:      logger,
	}
}

func (s *CompanyService) Create(ctx context.Context, req *domain.CreateCompanyRequest) (*domain.Company, error) {
	company := &domain.Company{
		Name:      req.Name,
		OrgNumber: req.OrgNumber,
		Website:   req.Website,
		Industry:  req.Industry,
		City:      req.City,
		Country:   req.Country,
	}
	company.CreatedBy = actorSubject(ctx)

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.activity.Record(ctx, "created", "company", &company.ID, company.Name)
	return company, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context, params domain.ListParams) (*domain.PagedResponse[domain.Company], error) {
	params.Normalize()
	companies, total, err := s.companyRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return domain.NewPagedResponse(companies, params, total), nil
}

func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCompanyRequest) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.OrgNumber != nil {
		company.OrgNumber = *req.OrgNumber
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.City != nil {
		company.City = *req.City
	}
	if req.Country != nil {
		company.Country = *req.Country
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	s.activity.Record(ctx, "updated", "company", &company.ID, company.Name)
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "company", &id, "")
	return nil
}

// LinkContact attaches a contact to a company
func (s *CompanyService) LinkContact(ctx context.Context, companyID uuid.UUID, req *domain.LinkCompanyContactRequest) (*domain.CompanyContact, error) {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}
	if _, err := s.contactRepo.GetByID(ctx, req.ContactID); err != nil {
		return nil, err
	}

	link := &domain.CompanyContact{
		CompanyID: companyID,
		ContactID: req.ContactID,
		Role:      req.Role,
	}
	if err := s.companyRepo.LinkContact(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *CompanyService) UnlinkContact(ctx context.Context, companyID, contactID uuid.UUID) error {
	return s.companyRepo.UnlinkContact(ctx, companyID, contactID)
}

// Contacts lists the contacts linked to a company
func (s *CompanyService) Contacts(ctx context.Context, companyID uuid.UUID) ([]domain.Contact, error) {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.contactRepo.ListByCompany(ctx, companyID)
}
