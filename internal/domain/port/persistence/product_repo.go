package persistence

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// ProductRepository gives read access to the points catalog
type ProductRepository interface {
	// FindActive returns all active products ordered by name, then id
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	FindActive(ctx context.Context) ([]*entity.Product, error)

	// Create adds a catalog product
	// Used for seeding the demo catalog
	Create(ctx context.Context, product *entity.Product) error
}
