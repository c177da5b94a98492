package persistence

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with transaction data
type TransactionRepository interface {
	// Create saves a new transaction without its items
	//
	// Possible errors:
	// - ErrDuplicateReceipt: If a transaction with the same receipt key already exists
	// - ErrConcurrentUpdate: If the database aborted the write because of a concurrent one
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateItem saves one item of an already created transaction
	//
	// Possible errors:
	// - ErrConstraintViolation: If the owning transaction does not exist
	// - ErrDatabaseConnection: If database connection fails
	CreateItem(ctx context.Context, item *entity.TransactionItem) error

	// ExistsByReceiptKey checks if the receipt was already turned into a transaction
	// Used for deduplication before the fiscal document is fetched
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ExistsByReceiptKey(ctx context.Context, receiptKey string) (bool, error)

	// GetByID retrieves a transaction with its items and store
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// ListByUser returns the user's transactions with their items, newest first
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error)
}
