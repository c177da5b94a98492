package usecase

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// UserUseCase defines methods for user-related business operations
type UserUseCase interface {
	// GetPointsBalance returns the user's points balance
	// This is the main method used by the GET /user/{userId}/points endpoint
	GetPointsBalance(ctx context.Context, userID uint64) (*entity.PointsBalance, error)

	// CreateUser creates a new user with the given ID and no points
	CreateUser(ctx context.Context, id uint64) (*entity.User, error)

	// CreateDefaultUsers creates predefined users with IDs 1, 2, 3
	CreateDefaultUsers(ctx context.Context) error

	// UserExists checks if a user exists with the given ID
	UserExists(ctx context.Context, userID uint64) (bool, error)
}
