package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/model"
)

// StoreRepository implements StoreRepository interface using GORM
type StoreRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewStoreRepository creates a new StoreRepository instance
func NewStoreRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *StoreRepository {
	return &StoreRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// GetOrCreate inserts the store unless the name exists and then reads the stored row.
// The unique index on name makes concurrent first scans converge on one store.
func (r *StoreRepository) GetOrCreate(ctx context.Context, name, location string) (*entity.Store, error) {
	store, err := entity.NewStore(name, location, r.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	candidate := model.Store{
		ID:        store.ID,
		Name:      store.Name,
		Location:  store.Location,
		CreatedAt: store.CreatedAt,
	}

	db := r.db.WithContext(ctx)

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate)
	if result.Error != nil {
		return nil, r.handleDatabaseError("creating store", result.Error, store.Name)
	}

	var storeModel model.Store
	if err := db.Where("name = ?", store.Name).First(&storeModel).Error; err != nil {
		return nil, r.handleDatabaseError("reading store", err, store.Name)
	}

	if storeModel.ID == candidate.ID {
		r.logger.Info("Store created", map[string]any{
			"store_id":   storeModel.ID,
			"store_name": storeModel.Name,
		})
	}

	return modelToStore(&storeModel), nil
}

func (r *StoreRepository) handleDatabaseError(operation string, err error, name string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"store_name": name,
		"error":      err.Error(),
	})
	return r.errorClassifier.ToDomainError(err, errs.ErrConstraintViolation)
}

func modelToStore(m *model.Store) *entity.Store {
	return &entity.Store{
		ID:        m.ID,
		Name:      m.Name,
		Location:  m.Location,
		CreatedAt: m.CreatedAt,
	}
}
