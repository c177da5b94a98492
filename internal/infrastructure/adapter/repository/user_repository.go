package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/model"
)

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) (*entity.User, error) {
	user, err := entity.NewUser(userModel.ID, userModel.Points, r.timeProvider)
	if err != nil {
		r.logger.Error("Failed to create user entity", map[string]any{
			"user_id": userModel.ID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: failed to create user entity: %s", errs.ErrInternalServer, err.Error())
	}

	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt
	user.TransactionCount = userModel.TransactionCount

	return user, nil
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id":    userID,
		"error":      err.Error(),
		"error_type": string(r.errorClassifier.Classify(err)),
	})

	return r.errorClassifier.ToDomainError(err, errs.ErrDuplicateUser)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}

	return r.modelToEntity(&userModel)
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		ID:               user.ID,
		Points:           user.Points(),
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
		TransactionCount: user.TransactionCount,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ID)
	}

	r.logger.Info("User created successfully", map[string]any{
		"user_id": user.ID,
	})
	return nil
}

// IncrementPoints adds delta to the balance in a single UPDATE ... RETURNING statement
func (r *UserRepository) IncrementPoints(ctx context.Context, userID uint64, delta int64) (int64, error) {
	if delta < 0 {
		return 0, errs.ErrNegativeAmount
	}

	var updated model.User
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "points"}}}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"points":            gorm.Expr("points + ?", delta),
			"transaction_count": gorm.Expr("transaction_count + 1"),
			"updated_at":        r.timeProvider.Now(),
		})

	if result.Error != nil {
		return 0, r.handleDatabaseError("incrementing points", result.Error, userID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during points increment", map[string]any{
			"user_id": userID,
		})
		return 0, errs.ErrUserNotFound
	}

	r.logger.Debug("User points incremented", map[string]any{
		"user_id":    userID,
		"delta":      delta,
		"new_points": updated.Points,
	})

	return updated.Points, nil
}
