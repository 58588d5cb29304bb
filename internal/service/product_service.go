package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"go.uber.org/zap"
)

// ProductService manages the product catalog
type ProductService struct {
	productRepo    *repository.ProductRepository
	collectionRepo *repository.ProductCollectionRepository
	activity       *ActivityService
	logger         *zap.Logger
}

func NewProductService(
	productRepo *repository.ProductRepository,
	collectionRepo *repository.ProductCollectionRepository,
	activity *ActivityService,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		activity:       activity,
		logger:         logger,
	}
}

func (s *ProductService) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.Product, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	product := &domain.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Currency:     currency,
		CollectionID: req.CollectionID,
	}
	product.CreatedBy = actorSubject(ctx)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "created", "product", &product.ID, product.SKU)
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.productRepo.GetBySKU(ctx, sku)
}

func (s *ProductService) List(ctx context.Context, params domain.ListParams, collectionID *uuid.UUID) (*domain.PagedResponse[domain.Product], error) {
	params.Normalize()
	products, total, err := s.productRepo.List(ctx, params, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return domain.NewPagedResponse(products, params, total), nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *domain.CreateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SKU = req.SKU
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	if req.Currency != "" {
		product.Currency = req.Currency
	}
	product.CollectionID = req.CollectionID

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "updated", "product", &product.ID, product.SKU)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, "deleted", "product", &id, "")
	return nil
}

// AddVariant attaches a purchasable variant; variant SKUs share the global
// SKU namespace.
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, req *domain.CreateProductVariantRequest) (*domain.ProductVariant, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	variant := &domain.ProductVariant{
		ProductID: productID,
		SKU:       req.SKU,
		Name:      req.Name,
		Price:     req.Price,
		Stock:     req.Stock,
	}
	if err := s.productRepo.AddVariant(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (s *ProductService) RemoveVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	return s.productRepo.RemoveVariant(ctx, productID, variantID)
}

// Collections

func (s *ProductService) CreateCollection(ctx context.Context, name, description string) (*domain.ProductCollection, error) {
	collection := &domain.ProductCollection{
		Name:        name,
		Description: description,
	}
	collection.CreatedBy = actorSubject(ctx)

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

func (s *ProductService) ListCollections(ctx context.Context) ([]domain.ProductCollection, error) {
	return s.collectionRepo.List(ctx)
}

func (s *ProductService) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	return s.collectionRepo.Delete(ctx, id)
}
