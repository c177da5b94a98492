package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Do runs fn inside one transaction, committing when fn returns nil and rolling back otherwise.
	// The whole unit is retried when the database reports a serialization failure or deadlock.
	// A failed rollback or commit is reported as ErrPersistenceInconsistency.
	Do(ctx context.Context, fn func(ctx context.Context) error) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetStoreRepository returns a store repository bound to the current transaction
	GetStoreRepository(ctx context.Context) StoreRepository

	// GetProductRepository returns a product repository bound to the current transaction
	GetProductRepository(ctx context.Context) ProductRepository
}
