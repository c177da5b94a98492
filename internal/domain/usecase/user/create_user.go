package user

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// DefaultUserIDs are the members created on startup outside production
var DefaultUserIDs = []uint64{1, 2, 3}

// CreateUser creates a new user with the given ID and an empty points balance
func (u *UserUseCase) CreateUser(ctx context.Context, id uint64) (*entity.User, error) {
	if id == 0 {
		return nil, errs.ErrInvalidUserID
	}

	exists, err := u.UserExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.ErrDuplicateUser
	}

	user, err := entity.NewUser(id, 0, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		u.logger.Error("Failed to create user", map[string]any{
			"userId": id,
			"error":  err.Error(),
		})
		return nil, err
	}

	u.logger.Info("User created", map[string]any{
		"userId": id,
	})

	return user, nil
}

// CreateDefaultUsers creates predefined users with IDs 1, 2, 3
func (u *UserUseCase) CreateDefaultUsers(ctx context.Context) error {
	for _, id := range DefaultUserIDs {
		exists, err := u.UserExists(ctx, id)
		if err != nil {
			return err
		}

		if exists {
			u.logger.Info("Default user already exists", map[string]any{
				"userId": id,
			})
			continue
		}

		if _, err := u.CreateUser(ctx, id); err != nil {
			return err
		}
	}

	u.logger.Info("Default users created or verified", nil)
	return nil
}
