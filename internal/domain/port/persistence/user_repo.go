package persistence

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	// Used for the GET /user/{userId}/points endpoint
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// Create creates a new user
	// Used for initializing default users (1, 2, 3)
	//
	// Possible errors:
	// - ErrDuplicateUser: If user with same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// IncrementPoints atomically adds delta to the user's points and counts the transaction.
	// Returns the new balance.
	//
	// Possible errors:
	// - ErrUserNotFound: If no row was updated
	// - ErrConcurrentUpdate: If the database aborted the write because of a concurrent one
	// - ErrDatabaseConnection: If database connection fails
	IncrementPoints(ctx context.Context, userID uint64, delta int64) (int64, error)
}
