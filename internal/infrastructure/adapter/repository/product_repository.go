package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/model"
)

// ProductRepository implements ProductRepository interface using GORM
type ProductRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ProductRepository {
	return &ProductRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// FindActive returns the active catalog ordered by name, then id
func (r *ProductRepository) FindActive(ctx context.Context) ([]*entity.Product, error) {
	var models []model.Product
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.ProductActive)).
		Order("name ASC").
		Order("id ASC").
		Find(&models)

	if result.Error != nil {
		r.logger.Error("Database error when loading active products", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, r.errorClassifier.ToDomainError(result.Error, errs.ErrConstraintViolation)
	}

	products := make([]*entity.Product, len(models))
	for i := range models {
		products[i] = &entity.Product{
			ID:            models[i].ID,
			Name:          models[i].Name,
			PointsPerUnit: models[i].PointsPerUnit,
			Status:        entity.ProductStatus(models[i].Status),
			CreatedAt:     models[i].CreatedAt,
		}
	}

	return products, nil
}

// Create adds a catalog product
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	now := r.timeProvider.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.Status == "" {
		product.Status = entity.ProductActive
	}

	productModel := model.Product{
		ID:            product.ID,
		Name:          product.Name,
		PointsPerUnit: product.PointsPerUnit,
		Status:        string(product.Status),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     now,
	}

	if err := r.db.WithContext(ctx).Create(&productModel).Error; err != nil {
		r.logger.Error(fmt.Sprintf("Database error when creating product %q", product.Name), map[string]any{
			"product_id": product.ID,
			"error":      err.Error(),
		})
		return r.errorClassifier.ToDomainError(err, errs.ErrConstraintViolation)
	}

	return nil
}
