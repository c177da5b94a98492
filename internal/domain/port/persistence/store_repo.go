package persistence

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// StoreRepository defines methods to look up stores receipts are issued by
type StoreRepository interface {
	// GetOrCreate returns the store with the given name, creating it when missing.
	// An existing store is returned unchanged, location included.
	//
	// Possible errors:
	// - ErrInvalidStore: If name is empty
	// - ErrDatabaseConnection: If database connection fails
	GetOrCreate(ctx context.Context, name, location string) (*entity.Store, error)
}
