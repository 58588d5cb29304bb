package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/auth"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// VaultService manages creator-private vault items. Every operation requires
// an authenticated actor; items created by someone else behave as if they do
// not exist.
type VaultService struct {
	vaultRepo *repository.VaultRepository
	activity  *ActivityService
	logger    *zap.Logger
}

func NewVaultService(vaultRepo *repository.VaultRepository, activity *ActivityService, logger *zap.Logger) *VaultService {
	return &VaultService{vaultRepo: vaultRepo, activity: activity, logger: logger}
}

func (s *VaultService) requireActor(ctx context.Context) (string, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok {
		return "", ErrUnauthorized
	}
	return actor.Subject, nil
}

// Documents

func (s *VaultService) CreateDocument(ctx context.Context, req *domain.CreateVaultDocumentRequest) (*domain.VaultDocument, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	doc := &domain.VaultDocument{
		Title:       req.Title,
		StoragePath: req.StoragePath,
		MimeType:    req.MimeType,
		CompanyID:   req.CompanyID,
		Notes:       req.Notes,
	}
	doc.CreatedBy = actor

	if err := s.vaultRepo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create vault document: %w", err)
	}

	s.activity.Record(ctx, "created", "vault_document", &doc.ID, doc.Title)
	return doc, nil
}

func (s *VaultService) GetDocument(ctx context.Context, id uuid.UUID) (*domain.VaultDocument, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}
	return s.vaultRepo.GetDocument(ctx, actor, id)
}

func (s *VaultService) ListDocuments(ctx context.Context) ([]domain.VaultDocument, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}
	return s.vaultRepo.ListDocuments(ctx, actor)
}

func (s *VaultService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}
	if err := s.vaultRepo.DeleteDocument(ctx, actor, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "vault_document", &id, "")
	return nil
}

// Passwords

func (s *VaultService) CreatePassword(ctx context.Context, req *domain.CreateVaultPasswordRequest) (*domain.VaultPassword, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	pw := &domain.VaultPassword{
		Title:              req.Title,
		Username:           req.Username,
		PasswordCiphertext: req.PasswordCiphertext,
		URL:                req.URL,
		CompanyID:          req.CompanyID,
		Notes:              req.Notes,
	}
	pw.CreatedBy = actor

	if err := s.vaultRepo.CreatePassword(ctx, pw); err != nil {
		return nil, fmt.Errorf("failed to create vault password: %w", err)
	}

	s.activity.Record(ctx, "created", "vault_password", &pw.ID, pw.Title)
	return pw, nil
}

func (s *VaultService) GetPassword(ctx context.Context, id uuid.UUID) (*domain.VaultPassword, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}
	return s.vaultRepo.GetPassword(ctx, actor, id)
}

func (s *VaultService) ListPasswords(ctx context.Context) ([]domain.VaultPassword, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}
	return s.vaultRepo.ListPasswords(ctx, actor)
}

func (s *VaultService) UpdatePassword(ctx context.Context, id uuid.UUID, req *domain.CreateVaultPasswordRequest) (*domain.VaultPassword, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	pw, err := s.vaultRepo.GetPassword(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	pw.Title = req.Title
	pw.Username = req.Username
	pw.PasswordCiphertext = req.PasswordCiphertext
	pw.URL = req.URL
	pw.CompanyID = req.CompanyID
	pw.Notes = req.Notes

	if err := s.vaultRepo.UpdatePassword(ctx, actor, pw); err != nil {
		return nil, fmt.Errorf("failed to update vault password: %w", err)
	}
	return pw, nil
}

func (s *VaultService) DeletePassword(ctx context.Context, id uuid.UUID) error {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}
	if err := s.vaultRepo.DeletePassword(ctx, actor, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "vault_password", &id, "")
	return nil
}

// Cards

func (s *VaultService) CreateCard(ctx context.Context, req *domain.CreateVaultCardRequest) (*domain.VaultCard, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	card := &domain.VaultCard{
		Title:            req.Title,
		CardholderName:   req.CardholderName,
		NumberCiphertext: req.NumberCiphertext,
		LastFour:         req.LastFour,
		ExpiryMonth:      req.ExpiryMonth,
		ExpiryYear:       req.ExpiryYear,
		CompanyID:        req.CompanyID,
	}
	card.CreatedBy = actor

	if err := s.vaultRepo.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create vault card: %w", err)
	}

	s.activity.Record(ctx, "created", "vault_card", &card.ID, card.Title)
	return card, nil
}

func (s *VaultService) GetCard(ctx context.Context, id uuid.UUID) (*domain.VaultCard, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}
	return s.vaultRepo.GetCard(ctx, actor, id)
}

func (s *VaultService) ListCards(ctx context.Context) ([]domain.VaultCard, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}
	return s.vaultRepo.ListCards(ctx, actor)
}

func (s *VaultService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}
	if err := s.vaultRepo.DeleteCard(ctx, actor, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "vault_card", &id, "")
	return nil
}
