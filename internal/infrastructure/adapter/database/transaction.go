package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *ErrorMapper
	retryConfig  RetryConfig
	metrics      *MetricsCollector
	queryTimeout time.Duration
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *UnitOfWork {
	return NewUnitOfWorkWithRetry(db, logger, timeProvider, DefaultRetryConfig())
}

// NewUnitOfWorkWithRetry creates a UnitOfWork with a custom retry policy for concurrency conflicts
func NewUnitOfWorkWithRetry(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, retryConfig RetryConfig) *UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  NewErrorMapper(),
		retryConfig:  retryConfig,
		metrics:      NewMetricsCollector(logger, timeProvider),
	}
}

// WithQueryTimeout bounds every attempt of a unit of work. Zero means no bound.
func (u *UnitOfWork) WithQueryTimeout(timeout time.Duration) *UnitOfWork {
	u.queryTimeout = timeout
	return u
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction with SERIALIZABLE isolation", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", u.errorMapper.MapError(tx.Error, "begin"))
	}

	if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE").Error; err != nil {
		tx.Rollback()
		u.logger.Error("Failed to set transaction isolation level", map[string]any{"error": err.Error()})
		return ctx, fmt.Errorf("failed to set transaction isolation level: %w", u.errorMapper.MapError(err, "begin"))
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback rolls back the current transaction
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// Do runs fn in one SERIALIZABLE transaction. Concurrency conflicts retry the whole unit.
// A unit that joins an outer transaction runs fn directly.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}

	return u.metrics.MeasureUnit(ctx, "unit_of_work", func() error {
		return RetryOnConcurrencyError(ctx, u.retryConfig, func() error {
			return u.runOnce(ctx, fn)
		}, u.logger)
	})
}

// runOnce performs a single attempt of a unit of work
func (u *UnitOfWork) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.queryTimeout)
		defer cancel()
	}

	txCtx, err := u.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback(txCtx)
			panic(p)
		}
	}()

	if fnErr := fn(txCtx); fnErr != nil {
		if rbErr := u.Rollback(txCtx); rbErr != nil {
			return &errs.UnitOfWorkError{
				Operation: "rollback",
				Err:       fmt.Errorf("%w: %w: %v (after %v)", errs.ErrPersistenceInconsistency, errs.ErrRollbackFailed, rbErr, fnErr),
			}
		}
		return fnErr
	}

	if commitErr := u.Commit(txCtx); commitErr != nil {
		// PostgreSQL aborts a transaction whose commit fails serialization, nothing was written
		if u.errorMapper.IsConcurrencyConflict(commitErr) {
			return fmt.Errorf("%w: %v", errs.ErrConcurrentUpdate, commitErr)
		}
		return &errs.UnitOfWorkError{
			Operation: "commit",
			Err:       fmt.Errorf("%w: %w: %v", errs.ErrPersistenceInconsistency, errs.ErrCommitFailed, commitErr),
		}
	}

	return nil
}

// GetUserRepository returns a user repository in the current transaction
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// GetStoreRepository returns a store repository in the current transaction
func (u *UnitOfWork) GetStoreRepository(ctx context.Context) persistence.StoreRepository {
	return repository.NewStoreRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetProductRepository returns a product repository in the current transaction
func (u *UnitOfWork) GetProductRepository(ctx context.Context) persistence.ProductRepository {
	return repository.NewProductRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}
