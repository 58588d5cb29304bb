package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return translateError(r.db.WithContext(ctx).Create(product).Error)
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Collection").
		Preload("Variants").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Variants").First(&product, "sku = ?", sku).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, params domain.ListParams, collectionID *uuid.UUID) ([]domain.Product, int64, error) {
	var products []domain.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if collectionID != nil {
		q = q.Where("collection_id = ?", *collectionID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	err := q.Order("name").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&products).Error
	return products, total, translateError(err)
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return translateError(r.db.WithContext(ctx).Save(product).Error)
}

// Delete soft-deletes a product and removes its variants
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("product_id = ?", id).Delete(&domain.ProductVariant{}).Error
	}))
}

func (r *ProductRepository) AddVariant(ctx context.Context, variant *domain.ProductVariant) error {
	return translateError(r.db.WithContext(ctx).Create(variant).Error)
}

func (r *ProductRepository) RemoveVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		Delete(&domain.ProductVariant{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type ProductCollectionRepository struct {
	db *gorm.DB
}

func NewProductCollectionRepository(db *gorm.DB) *ProductCollectionRepository {
	return &ProductCollectionRepository{db: db}
}

func (r *ProductCollectionRepository) Create(ctx context.Context, collection *domain.ProductCollection) error {
	return translateError(r.db.WithContext(ctx).Create(collection).Error)
}

func (r *ProductCollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductCollection, error) {
	var collection domain.ProductCollection
	err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &collection, nil
}

func (r *ProductCollectionRepository) List(ctx context.Context) ([]domain.ProductCollection, error) {
	var collections []domain.ProductCollection
	err := r.db.WithContext(ctx).Order("name").Find(&collections).Error
	return collections, translateError(err)
}

func (r *ProductCollectionRepository) Update(ctx context.Context, collection *domain.ProductCollection) error {
	return translateError(r.db.WithContext(ctx).Save(collection).Error)
}

// Delete soft-deletes a collection; products keep existing unattached
func (r *ProductCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.ProductCollection{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.Product{}).Where("collection_id = ?", id).
			Update("collection_id", nil).Error
	}))
}
