package user

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/usecase"
)

// UserUseCase implements the user business logic
type UserUseCase struct {
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserUseCase creates a new user use case instance
func NewUserUseCase(
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetPointsBalance retrieves a user's points balance
func (u *UserUseCase) GetPointsBalance(ctx context.Context, userID uint64) (*entity.PointsBalance, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		u.logger.Error("Failed to get user", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil, err
	}

	balance := user.ToPointsBalance()

	u.logger.Debug("Points balance retrieved", map[string]any{
		"userId": userID,
		"points": balance.Points,
	})

	return &balance, nil
}

// UserExists checks if a user exists with the given ID
func (u *UserUseCase) UserExists(ctx context.Context, userID uint64) (bool, error) {
	if userID == 0 {
		return false, errs.ErrInvalidUserID
	}

	_, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
